package catalog

import (
	"strings"
	"sync"
	"testing"

	"CryptoViewer/internal/model"
)

func sample() []*model.Currency {
	return []*model.Currency{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", PriceUsd: 65000},
		{ID: "ethereum", Name: "Ethereum", Symbol: "eth", PriceUsd: 3200},
		{ID: "tether", Name: "Tether", Symbol: "usdt", PriceUsd: 1},
		{ID: "ethena", Name: "Ethena", Symbol: "ena", PriceUsd: 0.5},
		{ID: "bitcoin-cash", Name: "Bitcoin Cash", Symbol: "bch", PriceUsd: 400},
	}
}

func ids(list []*model.Currency) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isOrderedSubsequence reports whether sub appears in all in the same relative order.
func isOrderedSubsequence(sub, all []*model.Currency) bool {
	j := 0
	for _, c := range all {
		if j < len(sub) && sub[j] == c {
			j++
		}
	}
	return j == len(sub)
}

func TestSetSearchText_FiltersByNameOrSymbol(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"eth", []string{"ethereum", "tether", "ethena"}},
		{"ETH", []string{"ethereum", "tether", "ethena"}},
		{"usdt", []string{"tether"}},
		{"BiTcOiN", []string{"bitcoin", "bitcoin-cash"}},
		{"bch", []string{"bitcoin-cash"}},
		{"cash", []string{"bitcoin-cash"}},
		{"zzz", []string{}},
		{"", []string{"bitcoin", "ethereum", "tether", "ethena", "bitcoin-cash"}},
		{"   ", []string{"bitcoin", "ethereum", "tether", "ethena", "bitcoin-cash"}},
		{"\t\n", []string{"bitcoin", "ethereum", "tether", "ethena", "bitcoin-cash"}},
	}
	for _, tt := range tests {
		c := New()
		c.Load(sample())
		c.SetSearchText(tt.text)
		got := ids(c.Filtered())
		if !equalIDs(got, tt.want) {
			t.Errorf("search %q: expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestSetSearchText_MatchesInsideName(t *testing.T) {
	c := New()
	c.Load(sample())
	c.SetSearchText("eth")
	if _, ok := indexOf(c.Filtered(), "tether"); !ok {
		t.Errorf("expected Tether to match \"eth\" mid-name, got %v", ids(c.Filtered()))
	}
	c.SetSearchText("teth")
	if !equalIDs(ids(c.Filtered()), []string{"tether"}) {
		t.Errorf("expected only Tether for \"teth\", got %v", ids(c.Filtered()))
	}
}

func indexOf(list []*model.Currency, id string) (int, bool) {
	for i, c := range list {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

func TestFiltered_IsOrderedSubsetOfAll(t *testing.T) {
	c := New()
	c.Load(sample())
	for _, text := range []string{"", "b", "e", "t", "ET", "h", "coin", "x", " "} {
		c.SetSearchText(text)
		filtered := c.Filtered()
		all := c.All()
		if !isOrderedSubsequence(filtered, all) {
			t.Errorf("search %q: filtered %v is not an ordered subsequence of %v", text, ids(filtered), ids(all))
		}
		needle := strings.ToLower(text)
		for _, cur := range filtered {
			if strings.TrimSpace(text) != "" && !Matches(cur, needle) {
				t.Errorf("search %q: %s does not match", text, cur.ID)
			}
		}
	}
}

func TestScenario_SearchEth(t *testing.T) {
	c := New()
	c.Load([]*model.Currency{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc"},
		{ID: "ethereum", Name: "Ethereum", Symbol: "eth"},
	})
	c.SetSearchText("eth")
	got := c.Filtered()
	if len(got) != 1 || got[0].Name != "Ethereum" {
		t.Errorf("expected only Ethereum, got %v", ids(got))
	}
}

func TestLoad_ReplacesWholesale(t *testing.T) {
	c := New()
	c.Load(sample())
	y := []*model.Currency{
		{ID: "solana", Name: "Solana", Symbol: "sol"},
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc"},
	}
	c.Load(y)

	got := c.All()
	if !equalIDs(ids(got), []string{"solana", "bitcoin"}) {
		t.Fatalf("expected all-set to equal the second load, got %v", ids(got))
	}
	if got[1] != y[1] {
		t.Error("expected the newly loaded record, not a merge with the old one")
	}
}

func TestLoad_RecomputesAgainstCurrentSearch(t *testing.T) {
	c := New()
	c.SetSearchText("eth")
	if len(c.Filtered()) != 0 {
		t.Fatal("expected empty filtered set before load")
	}
	c.Load(sample())
	if !equalIDs(ids(c.Filtered()), []string{"ethereum", "tether", "ethena"}) {
		t.Errorf("expected load to honour the pending search, got %v", ids(c.Filtered()))
	}

	c.SetSearchText("sol")
	c.Load(append(sample(), &model.Currency{ID: "solana", Name: "Solana", Symbol: "sol"}))
	if !equalIDs(ids(c.Filtered()), []string{"solana"}) {
		t.Errorf("expected newest search to apply after reload, got %v", ids(c.Filtered()))
	}
}

func TestSetSearchText_Repeatable(t *testing.T) {
	c := New()
	c.Load(sample())
	c.SetSearchText("e")
	first := ids(c.Filtered())
	c.SetSearchText("e")
	second := ids(c.Filtered())
	if !equalIDs(first, second) {
		t.Errorf("expected identical results, got %v then %v", first, second)
	}
}

func TestRecomputeFiltered_Stable(t *testing.T) {
	c := New()
	c.Load(sample())
	c.SetSearchText("tether")
	before := ids(c.Filtered())
	c.RecomputeFiltered()
	if !equalIDs(before, ids(c.Filtered())) {
		t.Errorf("recompute changed result: %v -> %v", before, ids(c.Filtered()))
	}
}

func TestSelect_IsPermissive(t *testing.T) {
	c := New()
	c.Load(sample())

	all := c.All()
	if !c.Select(all[1]) {
		t.Error("expected member selection to report true")
	}
	if c.Selected() != all[1] {
		t.Error("expected selection to be recorded")
	}

	stranger := &model.Currency{ID: "dogecoin", Name: "Dogecoin"}
	if c.Select(stranger) {
		t.Error("expected non-member selection to report false")
	}
	if c.Selected() != stranger {
		t.Error("expected non-member selection to still be recorded")
	}
}

func TestAttachHistory(t *testing.T) {
	c := New()
	c.Load(sample())
	samples := []model.PriceHistorySample{{Price: 1}, {Price: 2}}
	if !c.AttachHistory("ethereum", samples) {
		t.Fatal("expected attach to succeed for a member")
	}
	cur, ok := c.Lookup("ethereum")
	if !ok || len(cur.PriceHistory) != 2 {
		t.Errorf("expected history on member, got %+v", cur)
	}
	if c.AttachHistory("dogecoin", samples) {
		t.Error("expected attach to fail for a non-member")
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := New()
	c.Load(sample())
	all := c.All()
	all[0] = nil
	if c.All()[0] == nil {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}

func TestConcurrentLoadAndSearch(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Load(sample())
		}()
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				c.SetSearchText("eth")
			} else {
				c.SetSearchText("")
			}
		}(i)
	}
	wg.Wait()

	c.SetSearchText("eth")
	if !equalIDs(ids(c.Filtered()), []string{"ethereum", "tether", "ethena"}) {
		t.Errorf("unexpected filtered set after concurrent updates: %v", ids(c.Filtered()))
	}
}
