// Package host exposes the engine's embedded host binding — the stable
// surface a calling application (CLI, WASM guest, in-process library
// consumer) drives instead of reaching into service/registry directly.
// Grounded on sentrie's api/handle_decision.go, which wraps a
// runtime.Executor behind a small request/response surface with its
// own duplicate-rejection and error-shaping rules; this package plays
// the same role for service.Service, trading the HTTP transport for a
// plain Go method surface a WASM or CGo binding can forward 1:1.
package host

import (
	"context"

	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/registry"
	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"github.com/MinBZK/regelrecht-mvp-sub000/service"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/MinBZK/regelrecht-mvp-sub000/version"
)

// appName and appVersion identify this build to version().
const (
	appName    = "regelrecht-engine"
	appVersion = "0.1.0"
)

// LawInfo is the metadata get_law_info reports for one loaded law.
type LawInfo struct {
	ID              string
	RegulatoryLayer string
	PublicationDate string
	BwbID           string
	URL             string
	Outputs         []string
	ArticleCount    int
}

// Host is the embedded binding: new() in the spec's surface.
type Host struct {
	registry *registry.Registry
	service  *service.Service
}

// New constructs an empty host with no laws loaded.
func New() *Host {
	reg := registry.New()
	return &Host{registry: reg, service: service.New(reg)}
}

// LoadLaw parses and registers a law document, returning its ID.
// A law already loaded under the same (ID, ValidFrom) is rejected
// rather than replaced — the host surface has no notion of
// intentional version upgrade, unlike service.Service.LoadLaw, which
// an operator driving the registry directly can use for that purpose.
func (h *Host) LoadLaw(yamlText string) (string, error) {
	law, err := lawdoc.FromYAMLString(yamlText)
	if err != nil {
		return "", err
	}
	if h.registry.HasVersion(law.ID, law.ValidFrom) {
		return "", rrerr.ErrLoad("law %q (valid_from %q) is already loaded", law.ID, law.ValidFrom)
	}
	if err := h.registry.LoadLaw(law); err != nil {
		return "", err
	}
	return law.ID, nil
}

// UnloadLaw removes every version of a law, reporting whether it was present.
func (h *Host) UnloadLaw(lawID string) bool {
	return h.registry.UnloadLaw(lawID)
}

// HasLaw reports whether any version of lawID is loaded.
func (h *Host) HasLaw(lawID string) bool {
	return h.registry.HasLaw(lawID)
}

// Execute evaluates one output of one law. Cross-law resolution that
// would require data this host cannot supply surfaces as
// ExternalReferenceNotResolved or DelegationNotResolved — the caller is
// expected to pre-resolve that value into params and retry.
func (h *Host) Execute(ctx context.Context, lawID, outputName string, params map[string]value.Value, date string) (service.Result, error) {
	return h.service.EvaluateLawOutput(ctx, lawID, outputName, params, date)
}

// ListLaws returns every loaded law ID.
func (h *Host) ListLaws() []string {
	return h.registry.ListLaws()
}

// LawCount returns the number of distinct law IDs loaded.
func (h *Host) LawCount() int {
	return h.registry.LawCount()
}

// GetLawInfo reports descriptive metadata for the most recent version
// of a loaded law.
func (h *Host) GetLawInfo(lawID string) (LawInfo, bool) {
	law, ok := h.registry.GetLaw(lawID)
	if !ok {
		return LawInfo{}, false
	}
	return LawInfo{
		ID:              law.ID,
		RegulatoryLayer: string(law.RegulatoryLayer),
		PublicationDate: law.PublicationDate,
		BwbID:           law.BwbID,
		URL:             law.URL,
		Outputs:         law.PublicOutputs(),
		ArticleCount:    len(law.Articles),
	}, true
}

// Version reports this build's identity.
func (h *Host) Version() string {
	return version.Get(appName, appVersion).String()
}
