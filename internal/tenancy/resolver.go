package tenancy

import "context"

// Resolver runs extraction then validation and produces the RequestContext.
// Any failure aborts before an entity repository is reached.
type Resolver struct {
	extractor *Extractor
	validator *Validator
}

func NewResolver(extractor *Extractor, validator *Validator) *Resolver {
	return &Resolver{extractor: extractor, validator: validator}
}

func (r *Resolver) Policy() Policy { return r.extractor.Policy() }

func (r *Resolver) Resolve(ctx context.Context, req Request) (RequestContext, error) {
	raw, err := r.extractor.Extract(req)
	if err != nil {
		return RequestContext{}, err
	}
	t, err := r.validator.Validate(ctx, raw)
	if err != nil {
		return RequestContext{}, err
	}
	return NewRequestContext(t), nil
}
