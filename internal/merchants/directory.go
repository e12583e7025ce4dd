// Package merchants carries the static merchant catalog used for synthetic
// transaction generation and the directory that resolves merchant names and
// tickers to company domains for logo and link rendering.
package merchants

import "strings"

// Merchant is one catalog entry. Domain may be empty for merchants with no
// known public company behind them.
type Merchant struct {
	Name     string
	Category string
	Ticker   string
	Domain   string
}

// Catalog is the fixed merchant set the synthetic source draws from.
var Catalog = []Merchant{
	{Name: "Starbucks", Category: "Coffee & Dining", Ticker: "SBUX", Domain: "starbucks.com"},
	{Name: "Amazon", Category: "Shopping", Ticker: "AMZN", Domain: "amazon.com"},
	{Name: "Apple Store", Category: "Electronics", Ticker: "AAPL", Domain: "apple.com"},
	{Name: "Netflix", Category: "Entertainment", Ticker: "NFLX", Domain: "netflix.com"},
	{Name: "Walmart", Category: "Groceries", Ticker: "WMT", Domain: "walmart.com"},
	{Name: "Target", Category: "Shopping", Ticker: "TGT", Domain: "target.com"},
	{Name: "McDonald's", Category: "Fast Food", Ticker: "MCD", Domain: "mcdonalds.com"},
	{Name: "Nike", Category: "Apparel", Ticker: "NKE", Domain: "nike.com"},
	{Name: "Chipotle", Category: "Fast Food", Ticker: "CMG", Domain: "chipotle.com"},
	{Name: "Costco", Category: "Groceries", Ticker: "COST", Domain: "costco.com"},
	{Name: "Uber", Category: "Transport", Ticker: "UBER", Domain: "uber.com"},
	{Name: "Lyft", Category: "Transport", Ticker: "LYFT", Domain: "lyft.com"},
	{Name: "Spotify", Category: "Entertainment", Ticker: "SPOT", Domain: "spotify.com"},
	{Name: "Home Depot", Category: "Home Improvement", Ticker: "HD", Domain: "homedepot.com"},
	{Name: "Chevron", Category: "Gas", Ticker: "CVX", Domain: "chevron.com"},
	{Name: "Shell", Category: "Gas", Ticker: "SHEL", Domain: "shell.com"},
	{Name: "CVS Pharmacy", Category: "Health", Ticker: "CVS", Domain: "cvs.com"},
	{Name: "Walgreens", Category: "Health", Ticker: "WBA", Domain: "walgreens.com"},
	{Name: "Best Buy", Category: "Electronics", Ticker: "BBY", Domain: "bestbuy.com"},
	{Name: "Domino's", Category: "Fast Food", Ticker: "DPZ", Domain: "dominos.com"},
	{Name: "Disney+", Category: "Entertainment", Ticker: "DIS", Domain: "disneyplus.com"},
	{Name: "Whole Foods", Category: "Groceries", Ticker: "AMZN", Domain: "wholefoodsmarket.com"},
	{Name: "Trader Joe's", Category: "Groceries"},
	{Name: "Local Coffee Shop", Category: "Coffee & Dining"},
	{Name: "Corner Deli", Category: "Food"},
}

var (
	byName   map[string]Merchant
	byTicker map[string]Merchant
)

func init() {
	byName = make(map[string]Merchant, len(Catalog))
	byTicker = make(map[string]Merchant, len(Catalog))
	for _, m := range Catalog {
		byName[strings.ToLower(m.Name)] = m
		if m.Ticker != "" {
			if _, ok := byTicker[m.Ticker]; !ok {
				byTicker[m.Ticker] = m
			}
		}
	}
}

// LookupName finds a catalog entry by merchant name, case-insensitive.
func LookupName(name string) (Merchant, bool) {
	m, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// LookupTicker finds a catalog entry by ticker symbol.
func LookupTicker(ticker string) (Merchant, bool) {
	m, ok := byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	return m, ok
}

// DomainFor resolves a merchant name or ticker to a company domain, trying the
// name first. Empty when neither is known.
func DomainFor(nameOrTicker string) string {
	if m, ok := LookupName(nameOrTicker); ok {
		return m.Domain
	}
	if m, ok := LookupTicker(nameOrTicker); ok {
		return m.Domain
	}
	return ""
}

// LogoURL builds a logo URL for a company domain. Empty when domain is empty.
func LogoURL(domain string) string {
	if domain == "" {
		return ""
	}
	return "https://logo.clearbit.com/" + domain
}
