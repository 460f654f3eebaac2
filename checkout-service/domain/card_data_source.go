package domain

// CardDataSourceType discriminates where the card data lives during tokenization
type CardDataSourceType string

const (
	// CardDataSourceRaw means the card fields transit application memory.
	// Raw-field integrations carry a compliance burden the hosted mode does
	// not; callers must surface that distinction, never treat the two as
	// equivalent.
	CardDataSourceRaw CardDataSourceType = "raw_card"
	// CardDataSourceHostedField means the processor's own component holds the
	// card data and this process only ever sees an opaque reference.
	CardDataSourceHostedField CardDataSourceType = "hosted_field"
)

// CardDataSource is the tagged variant handed to the tokenization client.
// Exactly one of the type-specific members is set.
type CardDataSource struct {
	Type CardDataSourceType
	*RawCardSource
	*HostedFieldSource
}

// RawCardSource carries a fully populated card snapshot
type RawCardSource struct {
	Card CardDetails
}

// HostedFieldSource references the processor-held card component
type HostedFieldSource struct {
	Ref string
}

// NewRawCardSource wraps locally collected card details
func NewRawCardSource(card CardDetails) CardDataSource {
	return CardDataSource{
		Type:          CardDataSourceRaw,
		RawCardSource: &RawCardSource{Card: card},
	}
}

// NewHostedFieldSource wraps a processor-held field reference
func NewHostedFieldSource(ref string) CardDataSource {
	return CardDataSource{
		Type:              CardDataSourceHostedField,
		HostedFieldSource: &HostedFieldSource{Ref: ref},
	}
}
