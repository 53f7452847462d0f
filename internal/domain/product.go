package domain

// Product identifies what a refresh is about. Brand is optional.
type Product struct {
	ID      int64
	Name    string
	Brand   string
	Profile string // profile name, e.g. "appliance" or "ai_tool"
}

// Validate reports caller misuse on write-back paths.
func (p Product) Validate() error {
	if p.ID <= 0 || p.Name == "" {
		return ErrInvalidProduct
	}
	return nil
}
