package phone

// Pipeline bundles every component over one shared handle.
type Pipeline struct {
	Handle    Handle
	Parser    *Parser
	Formatter *Formatter
	Validator *Validator
	Catalog   *Catalog
	Live      *LiveFormatter
}

// NewPipeline wires all components to h.
func NewPipeline(h Handle) *Pipeline {
	formatter := NewFormatter(h)
	return &Pipeline{
		Handle:    h,
		Parser:    NewParser(h),
		Formatter: formatter,
		Validator: NewValidator(h),
		Catalog:   NewCatalog(h),
		Live:      NewLiveFormatter(h, formatter),
	}
}
