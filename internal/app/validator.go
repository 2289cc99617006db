package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmehra2102/TaskList/internal/domain"
)

// Query parameter names accepted by the listing endpoint.
const (
	ParamLimit  = "limit"
	ParamPage   = "page"
	ParamSkip   = "skip"
	ParamStatus = "status"
	ParamSearch = "search"
)

// RawParams holds untyped listing parameters. A missing key means the parameter was absent.
type RawParams map[string]string

// ParamsFromValues keeps the first value of every listing parameter present in v.
func ParamsFromValues(v url.Values) RawParams {
	raw := make(RawParams)
	for _, key := range []string{ParamLimit, ParamPage, ParamSkip, ParamStatus, ParamSearch} {
		if values, ok := v[key]; ok && len(values) > 0 {
			raw[key] = values[0]
		}
	}
	return raw
}

// ValidateListParams turns raw parameters into a ListQuery. Every field is checked
// and all violations are returned together in a *domain.ValidationError.
func ValidateListParams(raw RawParams) (*domain.ListQuery, error) {
	verr := &domain.ValidationError{}
	query := &domain.ListQuery{
		Limit:    domain.DefaultLimit,
		Selector: domain.PageAt(domain.DefaultPage),
	}

	if v, ok := raw[ParamLimit]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > domain.MaxLimit {
			verr.Add(ParamLimit, fmt.Sprintf("Limit must be an integer between 1 and %d", domain.MaxLimit))
		} else {
			query.Limit = n
		}
	}

	page, hasPage := raw[ParamPage]
	skip, hasSkip := raw[ParamSkip]

	if hasPage {
		n, err := strconv.Atoi(page)
		switch {
		case err != nil || n < 1:
			verr.Add(ParamPage, "Page must be a positive integer")
		case n > domain.MaxPage:
			verr.Add(ParamPage, fmt.Sprintf("Page must be at most %d", domain.MaxPage))
		case hasSkip:
			verr.Add(ParamPage, "Page and skip are mutually exclusive")
		default:
			query.Selector = domain.PageAt(n)
		}
	}

	if hasSkip {
		n, err := strconv.Atoi(skip)
		switch {
		case err != nil || n < 0:
			verr.Add(ParamSkip, "Skip must be a non-negative integer")
		case n > domain.MaxOffset:
			verr.Add(ParamSkip, fmt.Sprintf("Skip must be at most %d", domain.MaxOffset))
		case !hasPage:
			query.Selector = domain.SkipBy(n)
		}
	}

	if v, ok := raw[ParamStatus]; ok {
		status, err := domain.ParseStatus(v)
		if err != nil {
			verr.Add(ParamStatus, "Status must be one of: todo, doing, done")
		} else {
			query.Filter.Status = &status
		}
	}

	if v, ok := raw[ParamSearch]; ok {
		term := strings.TrimSpace(v)
		if len([]rune(term)) > domain.MaxSearchLen {
			verr.Add(ParamSearch, fmt.Sprintf("Search must be at most %d characters", domain.MaxSearchLen))
		} else {
			query.Filter.Search = term
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return query, nil
}
