// Package content holds the landing page copy: page metadata, outbound
// links, feature and pricing blocks, and the legal documents.
//
// The copy ships embedded in the binary as content.yaml. A deployment can
// point the content_file setting at its own YAML with the same shape.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bendaniels95/firelanding/internal/navigation"
)

//go:embed content.yaml
var embedded []byte

// Site is the complete page copy.
type Site struct {
	Brand     string     `yaml:"brand"`
	Meta      Meta       `yaml:"meta"`
	Links     Links      `yaml:"links"`
	Hero      Hero       `yaml:"hero"`
	Features  Features   `yaml:"features"`
	Steps     Steps      `yaml:"steps"`
	Pricing   Pricing    `yaml:"pricing"`
	Documents []Document `yaml:"documents"`
	Footer    Footer     `yaml:"footer"`
}

// Meta is the head metadata consumed by crawlers and social previews.
type Meta struct {
	Title             string   `yaml:"title"`
	Description       string   `yaml:"description"`
	SocialDescription string   `yaml:"social_description"`
	Keywords          []string `yaml:"keywords"`
	URL               string   `yaml:"url"`
	Locale            string   `yaml:"locale"`
	OGImage           string   `yaml:"og_image"`
	OGImageAlt        string   `yaml:"og_image_alt"`
	OGImageWidth      int      `yaml:"og_image_width"`
	OGImageHeight     int      `yaml:"og_image_height"`
	TwitterCard       string   `yaml:"twitter_card"`
	ThemeColor        string   `yaml:"theme_color"`
	Index             bool     `yaml:"index"`
	Follow            bool     `yaml:"follow"`
}

// Robots renders the robots meta directive.
func (m Meta) Robots() string {
	index, follow := "noindex", "nofollow"
	if m.Index {
		index = "index"
	}
	if m.Follow {
		follow = "follow"
	}
	return index + ", " + follow
}

// RobotsTxt renders robots.txt to match the robots meta directive.
func (m Meta) RobotsTxt() string {
	rule := "Allow: /"
	if !m.Index {
		rule = "Disallow: /"
	}
	return "User-agent: *\n" + rule + "\n"
}

// Links are the outbound destinations.
type Links struct {
	AppStore     string `yaml:"app_store"`
	Refund       string `yaml:"refund"`
	SupportEmail string `yaml:"support_email"`
	PrivacyEmail string `yaml:"privacy_email"`
	LegalEmail   string `yaml:"legal_email"`
}

// Hero is the above-the-fold copy.
type Hero struct {
	Badge        string `yaml:"badge"`
	Headline     string `yaml:"headline"`
	Highlight    string `yaml:"highlight"`
	Subhead      string `yaml:"subhead"`
	CTA          string `yaml:"cta"`
	SecondaryCTA string `yaml:"secondary_cta"`
	HistoryLabel string `yaml:"history_label"`
}

// Feature is one card in the feature grid.
type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Features is the feature grid section.
type Features struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Items    []Feature `yaml:"items"`
}

// Step is one entry of the how-it-works list. Steps are numbered by position.
type Step struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Steps is the how-it-works section.
type Steps struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Items    []Step `yaml:"items"`
}

// Plan is a pricing tier.
type Plan struct {
	Name     string   `yaml:"name"`
	Price    string   `yaml:"price"`
	Period   string   `yaml:"period"`
	Popular  bool     `yaml:"popular"`
	Badge    string   `yaml:"badge"`
	CTA      string   `yaml:"cta"`
	Features []string `yaml:"features"`
}

// Pricing is the pricing section.
type Pricing struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Note     string `yaml:"note"`
	Plans    []Plan `yaml:"plans"`
}

// Block is a headed run of prose inside a document. Paragraphs and list
// items may use **bold** and [text](url) inline markup.
type Block struct {
	Heading    string   `yaml:"heading"`
	Level      int      `yaml:"level"`
	Paragraphs []string `yaml:"paragraphs"`
	Bullets    []string `yaml:"bullets"`
	Steps      []string `yaml:"steps"`
}

// HeadingLevel returns the HTML heading level, defaulting to h2.
func (b Block) HeadingLevel() int {
	if b.Level == 3 {
		return 3
	}
	return 2
}

// Document is a legal or support text rendered as its own page section.
type Document struct {
	ID      string  `yaml:"id"`
	Title   string  `yaml:"title"`
	Dated   bool    `yaml:"dated"`
	Callout *Block  `yaml:"callout"`
	Blocks  []Block `yaml:"blocks"`
}

// Footer is the closing copy.
type Footer struct {
	Disclaimer string `yaml:"disclaimer"`
}

// Load decodes the embedded copy.
func Load() (*Site, error) {
	return Parse(embedded)
}

// MustLoad is Load for package initialisation and tests. The embedded file
// is covered by tests, so a failure here is a build defect.
func MustLoad() *Site {
	site, err := Load()
	if err != nil {
		panic(err)
	}
	return site
}

// LoadFile decodes copy from path, falling back to the embedded copy when
// path is empty.
func LoadFile(path string) (*Site, error) {
	if path == "" {
		return Load()
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Parse decodes and validates YAML copy.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return &site, nil
}

// Validate checks the copy covers every navigation target and that each
// block has something to render.
func (s *Site) Validate() error {
	var errs []error

	if s.Brand == "" {
		errs = append(errs, errors.New("brand is required"))
	}
	if s.Meta.Title == "" {
		errs = append(errs, errors.New("meta.title is required"))
	}
	if s.Links.AppStore == "" {
		errs = append(errs, errors.New("links.app_store is required"))
	}
	if len(s.Features.Items) == 0 {
		errs = append(errs, errors.New("at least one feature is required"))
	}
	if len(s.Steps.Items) == 0 {
		errs = append(errs, errors.New("at least one step is required"))
	}
	for i, plan := range s.Pricing.Plans {
		if plan.Name == "" {
			errs = append(errs, fmt.Errorf("pricing.plans[%d]: name is required", i))
		}
		if len(plan.Features) == 0 {
			errs = append(errs, fmt.Errorf("pricing plan %q has no features", plan.Name))
		}
	}

	seen := make(map[string]bool, len(s.Documents))
	for _, doc := range s.Documents {
		if seen[doc.ID] {
			errs = append(errs, fmt.Errorf("duplicate document id %q", doc.ID))
		}
		seen[doc.ID] = true
		if _, err := navigation.ParseSection(doc.ID); err != nil {
			errs = append(errs, fmt.Errorf("document %q: %w", doc.ID, err))
		}
	}
	for _, sec := range []navigation.Section{navigation.Privacy, navigation.Terms, navigation.Support} {
		if _, ok := s.Document(string(sec)); !ok {
			errs = append(errs, fmt.Errorf("missing document for section %q", sec))
		}
	}

	return errors.Join(errs...)
}

// Document returns the document with the given id.
func (s *Site) Document(id string) (Document, bool) {
	for _, doc := range s.Documents {
		if doc.ID == id {
			return doc, true
		}
	}
	return Document{}, false
}
