package api

import (
	"encoding/json"

	"github.com/deltaddl/deltaddl/internal/ddl"
	"github.com/deltaddl/deltaddl/internal/sanitize"
)

// GenerateRequest is the body of POST /api/generate. Document carries the
// raw data-model JSON; all option fields are optional and fall back to the
// server defaults when omitted.
type GenerateRequest struct {
	Document json.RawMessage `json:"document"`
	Options  *OptionsPatch   `json:"options,omitempty"`
}

// OptionsPatch overrides individual generation options. Pointer fields
// distinguish "not set" from an explicit false.
type OptionsPatch struct {
	CreateDatabase        *bool  `json:"create_database,omitempty"`
	IncludeConstraintInfo *bool  `json:"include_constraint_info,omitempty"`
	IncludeComments       *bool  `json:"include_comments,omitempty"`
	AddClustering         *bool  `json:"add_clustering,omitempty"`
	UseDelta              *bool  `json:"use_delta,omitempty"`
	IncludePK             *bool  `json:"include_pk,omitempty"`
	IncludeForeignKeys    *bool  `json:"include_foreign_keys,omitempty"`
	IncludeFKComments     *bool  `json:"include_fk_comments,omitempty"`
	IncludeValidation     *bool  `json:"include_validation_examples,omitempty"`
	SanitizeMethod        string `json:"sanitize_method,omitempty"`
}

// apply layers the patch over base. The two foreign-key booleans map onto a
// single constraint style, with ALTER statements taking precedence when both
// are requested.
func (p *OptionsPatch) apply(base ddl.Options) ddl.Options {
	if p == nil {
		return base
	}
	opts := base
	if p.CreateDatabase != nil {
		opts.CreateDatabase = *p.CreateDatabase
	}
	if p.IncludeConstraintInfo != nil {
		opts.IncludeConstraintInfo = *p.IncludeConstraintInfo
	}
	if p.IncludeComments != nil {
		opts.IncludeComments = *p.IncludeComments
	}
	if p.AddClustering != nil {
		opts.AddClustering = *p.AddClustering
	}
	if p.UseDelta != nil {
		opts.UseDelta = *p.UseDelta
	}
	if p.IncludePK != nil {
		opts.IncludePK = *p.IncludePK
	}
	if p.IncludeForeignKeys != nil || p.IncludeFKComments != nil {
		fk := p.IncludeForeignKeys != nil && *p.IncludeForeignKeys
		fkComments := p.IncludeFKComments != nil && *p.IncludeFKComments
		opts.Constraints = ddl.StyleFromFlags(fk, fkComments)
	}
	if p.IncludeValidation != nil {
		opts.IncludeValidation = *p.IncludeValidation
	}
	if p.SanitizeMethod != "" {
		opts.SanitizeMethod = sanitize.ParseMethod(p.SanitizeMethod)
	}
	return opts
}

// GenerateResponse is the body returned by POST /api/generate.
type GenerateResponse struct {
	ModelName string   `json:"model_name"`
	Filename  string   `json:"filename"`
	DDL       string   `json:"ddl"`
	Warnings  []string `json:"warnings,omitempty"`
}

// FetchRequest is the body of POST /api/fetch. Token and Environment fall
// back to the server configuration when omitted.
type FetchRequest struct {
	ModelID     string `json:"model_id"`
	Token       string `json:"token,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// OptionsResponse describes the defaults and accepted values for the
// generation options, for clients building an options form.
type OptionsResponse struct {
	Defaults        ddl.Options `json:"defaults"`
	SanitizeMethods []string    `json:"sanitize_methods"`
	ConstraintModes []string    `json:"constraint_modes"`
}
