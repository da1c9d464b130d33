package export

import (
	"strings"

	"github.com/ManuelReschke/CallPlanner/app/models"
)

// NotAvailable replaces every empty field in an exported document.
const NotAvailable = "N/A"

const (
	documentTitle = "Strategic Call Plan"
	toolName      = "Professional Sales Planning Tool"
	toolAudience  = "Supporting Healthcare Representatives"
)

// BlockKind tells an adapter how to emphasise a block.
type BlockKind int

const (
	KindBody BlockKind = iota
	KindLabel
	KindTip
)

// Block is one unit of text inside a section.
type Block struct {
	Kind BlockKind
	Text string
	// Icon decorates tip blocks in adapters that can show it.
	Icon string
}

// Section is a numbered heading followed by its blocks.
type Section struct {
	Heading string
	Blocks  []Block
}

// Document is the format-independent rendering of a plan. Every adapter
// emits the title block, sections and footer in this order.
type Document struct {
	Title     string
	Subtitles []string
	Sections  []Section
	Footer    []string
	// ClientName is the raw client name, used for the file name.
	ClientName string
}

type labeledField struct {
	label string
	value *string
}

// Compose lays out a plan into sections. Empty fields become N/A and an
// unknown social style yields N/A for both the style and its tip.
func Compose(p *models.Plan) Document {
	style := NotAvailable
	tip := Block{Kind: KindTip, Text: NotAvailable}
	if profile, ok := p.SocialStyle.Profile(); ok {
		style = profile.Style.String()
		tip.Text = StripMarkup(profile.Tip)
		tip.Icon = profile.Icon
	}

	return Document{
		Title:     documentTitle,
		Subtitles: []string{toolName, toolAudience},
		Sections: []Section{
			{
				Heading: "1. Target Client",
				Blocks:  []Block{{Kind: KindBody, Text: orNA(p.ClientName)}},
			},
			{
				Heading: "2. Social Style Strategy",
				Blocks: []Block{
					{Kind: KindBody, Text: "Style: " + style},
					tip,
				},
			},
			{
				Heading: "3. SPIN Selling Plan",
				Blocks: labeled(
					labeledField{"[S] Situation - Context Questions", p.SpinS},
					labeledField{"[P] Problem - Pain Point Questions", p.SpinP},
					labeledField{"[I] Implication - Impact Questions", p.SpinI},
					labeledField{"[N] Need-Payoff - Solution Questions", p.SpinN},
				),
			},
			{
				Heading: "4. Storytelling & Objection Handling",
				Blocks: labeled(
					labeledField{"Storytelling to Use", p.Storytelling},
					labeledField{"Expected Objections", p.Objection},
					labeledField{"Response Strategy (Feel-Felt-Found)", p.Response},
				),
			},
		},
		Footer:     []string{toolName, toolAudience},
		ClientName: p.ClientName,
	}
}

func labeled(fields ...labeledField) []Block {
	blocks := make([]Block, 0, len(fields)*2)
	for _, f := range fields {
		value := ""
		if f.value != nil {
			value = *f.value
		}
		blocks = append(blocks,
			Block{Kind: KindLabel, Text: f.label},
			Block{Kind: KindBody, Text: orNA(value)},
		)
	}
	return blocks
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// StripMarkup removes **bold** markers from static tip text.
func StripMarkup(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
