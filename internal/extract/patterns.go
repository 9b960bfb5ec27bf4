package extract

import "regexp"

// Pattern tables for pulling offer terms out of filing text. All matching
// is case-insensitive against whitespace-normalized text.
var (
	offerPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$\s*(\d+\.?\d*)\s*per\s*(?:common\s*)?share`),
		regexp.MustCompile(`(?i)purchase\s+price\s+of\s+\$\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)offer\s+price\s+of\s+\$\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)price\s+range\s+of\s+\$\s*(\d+\.?\d*)\s*to\s+\$\s*(\d+\.?\d*)`),
	}

	expiryDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)expir\w*\s+(?:on|at)\s+[\w\s,]*(\w+\s+\d{1,2},?\s+\d{4})`),
		regexp.MustCompile(`(?i)(?:expire|expiration|deadline).*?(\w+\s+\d{1,2},?\s+\d{4})`),
		regexp.MustCompile(`(?i)the\s+offer\s+will\s+expire\s+.*?(\w+\s+\d{1,2},?\s+\d{4})`),
	}

	oddLotPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)odd[\s-]*lot`),
		regexp.MustCompile(`(?i)fewer\s+than\s+100\s+shares`),
		regexp.MustCompile(`(?i)less\s+than\s+100\s+shares`),
		regexp.MustCompile(`(?i)beneficial(?:ly)?\s+own(?:ing|s)?\s+(?:an\s+aggregate\s+of\s+)?fewer\s+than\s+100`),
	}

	prorationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)pro[\s-]*rat(?:a|ion|ed)`),
		regexp.MustCompile(`(?i)prorat(?:a|ion|ed)`),
		regexp.MustCompile(`(?i)proportional(?:ly)?\s+(?:reduce|adjust)`),
	}

	totalValuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:up\s+to|aggregate)\s+(?:of\s+)?\$\s*(\d[\d,]*(?:\.\d+)?)\s*(?:million|billion)?`),
		regexp.MustCompile(`(?i)repurchas\w*\s+up\s+to\s+\$\s*(\d[\d,]*(?:\.\d+)?)`),
	}

	conditionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:condition|subject\s+to|contingent\s+upon)\s*[:.]?\s*([^.]+\.)`),
	}
)
