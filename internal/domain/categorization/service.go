package categorization

// Service is the categorization entry point used during statement import.
type Service struct {
	engine *Engine
}

// NewService creates a service over the default pattern set.
func NewService() *Service {
	return &Service{engine: NewEngine(DefaultPatterns())}
}

// NewServiceWithPatterns creates a service over a custom pattern set.
func NewServiceWithPatterns(patterns []Pattern) *Service {
	return &Service{engine: NewEngine(patterns)}
}

// Categorize returns the best category for a merchant name, or "" when
// nothing matches. Exact keyword hits are tried first, then a fuzzy pass
// for OCR-garbled names.
func (s *Service) Categorize(merchant string) string {
	if merchant == "" {
		return ""
	}
	if category := s.engine.Match(merchant); category != "" {
		return category
	}
	return s.engine.fuzzyMatch(merchant)
}
