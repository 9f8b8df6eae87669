package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// ProductInput is what the caller knows about the product. Only Name is
// required.
type ProductInput struct {
	Name        string
	Description string
	Variation   string
	Pricing     *float64
}

// String flattens the product into the single line used both as the search
// query and inside the prompt.
func (p ProductInput) String() string {
	return fmt.Sprintf("Product Name: %s, Description: %s, Variation: %s, Pricing: %s",
		p.Name,
		orNA(p.Description),
		orNA(p.Variation),
		p.pricing(),
	)
}

func (p ProductInput) pricing() string {
	if p.Pricing == nil || *p.Pricing == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(*p.Pricing, 'f', -1, 64)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
