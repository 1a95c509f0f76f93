package accounting

import (
	"strings"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// AccountResolver finds an account by ID or, failing that, by code.
type AccountResolver interface {
	ResolveAccount(accountID, code string) (domain.Account, bool)
}

// DimensionResolver finds a dimension by code or ID and checks value membership.
type DimensionResolver interface {
	ResolveDimension(key string) (domain.Dimension, bool)
	HasValue(dimensionID, valueCode string) bool
}

// AccountIndex is an in-memory AccountResolver over one client's accounts.
type AccountIndex struct {
	byID   map[string]domain.Account
	byCode map[string]domain.Account
}

// NewAccountIndex indexes accounts by ID and by case-insensitive code.
func NewAccountIndex(accounts []domain.Account) *AccountIndex {
	idx := &AccountIndex{
		byID:   make(map[string]domain.Account, len(accounts)),
		byCode: make(map[string]domain.Account, len(accounts)),
	}
	for _, a := range accounts {
		idx.byID[a.AccountID] = a
		if a.Code != "" {
			idx.byCode[normalizeKey(a.Code)] = a
		}
	}
	return idx
}

// ResolveAccount implements AccountResolver.
func (idx *AccountIndex) ResolveAccount(accountID, code string) (domain.Account, bool) {
	if accountID != "" {
		a, ok := idx.byID[accountID]
		return a, ok
	}
	if code != "" {
		a, ok := idx.byCode[normalizeKey(code)]
		return a, ok
	}
	return domain.Account{}, false
}

// Len returns the number of indexed accounts.
func (idx *AccountIndex) Len() int {
	return len(idx.byID)
}

// DimensionIndex is an in-memory DimensionResolver over one client's dimensions.
type DimensionIndex struct {
	byKey  map[string]domain.Dimension
	values map[string]map[string]struct{}
}

// NewDimensionIndex indexes dimensions by ID and code, and their values by code.
func NewDimensionIndex(dimensions []domain.Dimension) *DimensionIndex {
	idx := &DimensionIndex{
		byKey:  make(map[string]domain.Dimension, len(dimensions)*2),
		values: make(map[string]map[string]struct{}, len(dimensions)),
	}
	for _, d := range dimensions {
		idx.byKey[d.DimensionID] = d
		idx.byKey[normalizeKey(d.DimensionID)] = d
		idx.byKey[normalizeKey(d.Code)] = d
		vals := make(map[string]struct{}, len(d.Values))
		for _, v := range d.Values {
			vals[normalizeKey(v.Code)] = struct{}{}
		}
		idx.values[d.DimensionID] = vals
	}
	return idx
}

// ResolveDimension implements DimensionResolver.
func (idx *DimensionIndex) ResolveDimension(key string) (domain.Dimension, bool) {
	if d, ok := idx.byKey[key]; ok {
		return d, true
	}
	d, ok := idx.byKey[normalizeKey(key)]
	return d, ok
}

// HasValue implements DimensionResolver.
func (idx *DimensionIndex) HasValue(dimensionID, valueCode string) bool {
	vals, ok := idx.values[dimensionID]
	if !ok {
		return false
	}
	_, ok = vals[normalizeKey(valueCode)]
	return ok
}

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
