package tenancy

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"crmapi/internal/errs"
)

// Policy selects where a route family reads the tenant identifier from.
// It is fixed when routes are registered and never negotiated per request.
type Policy int

const (
	PolicyHeader Policy = iota + 1
	PolicyTokenClaim
)

func (p Policy) String() string {
	switch p {
	case PolicyHeader:
		return "header"
	case PolicyTokenClaim:
		return "token-claim"
	default:
		return "unknown"
	}
}

// Request is the part of an inbound request the extractor reads.
type Request interface {
	Header(name string) string
}

// ClaimsVerifier checks a bearer credential and returns its claims.
// Signature checking lives behind this interface.
type ClaimsVerifier interface {
	Verify(token string) (map[string]any, error)
}

const authorizationHeader = "Authorization"

// Extractor pulls the raw tenant identifier out of a request according to its policy.
type Extractor struct {
	policy   Policy
	header   string
	claim    string
	verifier ClaimsVerifier
}

// NewHeaderExtractor reads the identifier from the named header.
func NewHeaderExtractor(header string) *Extractor {
	return &Extractor{policy: PolicyHeader, header: header}
}

// NewClaimExtractor reads the identifier from the named claim of a verified bearer token.
func NewClaimExtractor(verifier ClaimsVerifier, claim string) *Extractor {
	return &Extractor{policy: PolicyTokenClaim, claim: claim, verifier: verifier}
}

func (e *Extractor) Policy() Policy { return e.policy }

// Extract returns the raw identifier. It never touches storage.
func (e *Extractor) Extract(r Request) (string, error) {
	switch e.policy {
	case PolicyHeader:
		v := strings.TrimSpace(r.Header(e.header))
		if v == "" {
			return "", fmt.Errorf("%w: %s header is required", errs.ErrMissingIdentifier, e.header)
		}
		return v, nil
	case PolicyTokenClaim:
		return e.fromToken(r)
	default:
		return "", fmt.Errorf("%w: no extraction policy configured", errs.ErrMissingIdentifier)
	}
}

func (e *Extractor) fromToken(r Request) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header(authorizationHeader)), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("%w: bearer token is required", errs.ErrMissingIdentifier)
	}

	claims, err := e.verifier.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrInvalidCredential, err)
	}

	return claimToRaw(claims[e.claim], e.claim)
}

// claimToRaw canonicalises a decoded claim value into the decimal string the
// validator parses, so header and token identifiers share one code path.
func claimToRaw(v any, name string) (string, error) {
	switch c := v.(type) {
	case nil:
		return "", fmt.Errorf("%w: claim %s is absent", errs.ErrMissingIdentifier, name)
	case float64:
		if c != math.Trunc(c) || c >= math.MaxInt64 || c < math.MinInt64 {
			return "", fmt.Errorf("%w: claim %s is not an integer", errs.ErrMalformedIdentifier, name)
		}
		return strconv.FormatInt(int64(c), 10), nil
	case json.Number:
		return c.String(), nil
	case int64:
		return strconv.FormatInt(c, 10), nil
	case int:
		return strconv.Itoa(c), nil
	case string:
		if strings.TrimSpace(c) == "" {
			return "", fmt.Errorf("%w: claim %s is empty", errs.ErrMissingIdentifier, name)
		}
		return c, nil
	default:
		return "", fmt.Errorf("%w: claim %s has type %T", errs.ErrMalformedIdentifier, name, v)
	}
}
