// Package registry implements C6: the RuleResolver that indexes loaded
// law documents by ID, keeps multiple valid_from-dated versions per ID,
// and answers the cross-law lookups the service layer needs — article
// by output name, and delegated regulation by legal basis + select_on
// criteria. Grounded on original_source's resolver.rs, adapted from its
// borrow-checked &ArticleBasedLaw returns to a plain RWMutex-guarded map
// the way sentrie's index.Index guards its Namespaces/Programs maps.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/MinBZK/regelrecht-mvp-sub000/constants"
	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

type legalBasisKey struct {
	lawID   string
	article string
}

// Registry indexes loaded laws for fast cross-law lookup.
type Registry struct {
	mu sync.RWMutex

	// lawVersions maps a law ID to every loaded version, sorted newest
	// valid_from first (a version with no valid_from sorts last).
	lawVersions map[string][]*lawdoc.ArticleBasedLaw

	// outputIndex maps (lawID, outputName) to article number, built
	// from each law ID's most recent version only.
	outputIndex map[[2]string]string

	// legalBasisIndex maps (lawID, article) — the law+article a
	// delegation points back to — to the IDs of laws that declare
	// that legal basis.
	legalBasisIndex map[legalBasisKey][]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		lawVersions:     make(map[string][]*lawdoc.ArticleBasedLaw),
		outputIndex:     make(map[[2]string]string),
		legalBasisIndex: make(map[legalBasisKey][]string),
	}
}

// LoadLaw adds or replaces a law version. A version with the same
// (ID, ValidFrom) as one already loaded replaces it in place; otherwise
// it is appended as a new version. MaxLoadedLaws is only enforced for
// law IDs genuinely new to the registry — adding another version of an
// already-loaded ID never trips the limit.
func (r *Registry) LoadLaw(law *lawdoc.ArticleBasedLaw) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, isExistingID := r.lawVersions[law.ID]
	if !isExistingID {
		if len(r.lawVersions) >= constants.MaxLoadedLaws {
			return rrerr.ErrLoad("maximum number of laws exceeded (%d laws)", constants.MaxLoadedLaws)
		}
	}

	versions := r.lawVersions[law.ID]
	replaced := false
	for i, v := range versions {
		if v.ValidFrom == law.ValidFrom {
			versions[i] = law
			replaced = true
			break
		}
	}
	if !replaced {
		versions = append(versions, law)
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versionLess(versions[i].ValidFrom, versions[j].ValidFrom)
	})
	r.lawVersions[law.ID] = versions

	r.rebuildOutputIndexLocked(law.ID)

	for _, lb := range law.LegalBasis {
		key := legalBasisKey{lawID: lb.LawID, article: lb.Article}
		candidates := r.legalBasisIndex[key]
		if !containsString(candidates, law.ID) {
			r.legalBasisIndex[key] = append(candidates, law.ID)
		}
	}

	return nil
}

// versionLess reports whether a should sort before b in newest-first
// order: both dates parse and a > b, or a parses and b doesn't (a
// missing valid_from sorts last, regardless of the other value).
func versionLess(a, b string) bool {
	da, aok := parseValidFrom(a)
	db, bok := parseValidFrom(b)
	switch {
	case aok && bok:
		return da.After(db)
	case aok && !bok:
		return true
	default:
		return false
	}
}

func parseValidFrom(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func containsString(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}

// LoadFromYAML parses and loads a law document, returning its ID.
func (r *Registry) LoadFromYAML(yamlText string) (string, error) {
	law, err := lawdoc.FromYAMLString(yamlText)
	if err != nil {
		return "", err
	}
	if err := r.LoadLaw(law); err != nil {
		return "", err
	}
	return law.ID, nil
}

// GetLaw returns the most recent version of a law, or false if no
// version is loaded.
func (r *Registry) GetLaw(lawID string) (*lawdoc.ArticleBasedLaw, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	versions := r.lawVersions[lawID]
	if len(versions) == 0 {
		return nil, false
	}
	return versions[0], true
}

// GetLawForDate returns the version of lawID in effect on referenceDate:
// the most recent version whose ValidFrom is empty or <= referenceDate.
// With hasDate false, referenceDate is ignored and the most recent
// version is returned unconditionally.
func (r *Registry) GetLawForDate(lawID string, referenceDate time.Time, hasDate bool) (*lawdoc.ArticleBasedLaw, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	versions := r.lawVersions[lawID]
	if len(versions) == 0 {
		return nil, false
	}
	if !hasDate {
		return versions[0], true
	}
	for _, v := range versions {
		validFrom, ok := parseValidFrom(v.ValidFrom)
		if !ok || !validFrom.After(referenceDate) {
			return v, true
		}
	}
	return nil, false
}

// GetArticleByOutput finds the article producing output within lawID's
// version selected for referenceDate.
func (r *Registry) GetArticleByOutput(lawID, output string, referenceDate time.Time, hasDate bool) (*lawdoc.Article, *lawdoc.ArticleBasedLaw, bool) {
	law, ok := r.GetLawForDate(lawID, referenceDate, hasDate)
	if !ok {
		return nil, nil, false
	}
	article, ok := law.FindArticleByOutput(output)
	if !ok {
		return nil, nil, false
	}
	return article, law, true
}

// FindDelegatedRegulation searches laws whose legal_basis points at
// (lawID, article) for the first one whose metadata (gemeente_code,
// jaar, name) satisfies every evaluated select_on criterion.
func (r *Registry) FindDelegatedRegulation(lawID, article string, criteria map[string]value.Value, referenceDate time.Time, hasDate bool) (*lawdoc.ArticleBasedLaw, bool) {
	r.mu.RLock()
	candidateIDs := append([]string(nil), r.legalBasisIndex[legalBasisKey{lawID: lawID, article: article}]...)
	r.mu.RUnlock()

	for _, candidateID := range candidateIDs {
		law, ok := r.GetLawForDate(candidateID, referenceDate, hasDate)
		if !ok {
			continue
		}
		if matchesCriteria(law, criteria) {
			return law, true
		}
	}
	return nil, false
}

// matchesCriteria reports whether law's metadata fields satisfy every
// entry in criteria. A criterion naming a field law doesn't carry never
// matches.
func matchesCriteria(law *lawdoc.ArticleBasedLaw, criteria map[string]value.Value) bool {
	fields := lawMetadataValues(law)
	for name, want := range criteria {
		got, ok := fields[name]
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

func lawMetadataValues(law *lawdoc.ArticleBasedLaw) map[string]value.Value {
	fields := make(map[string]value.Value, 3)
	if law.GemeenteCode != "" {
		fields["gemeente_code"] = value.String(law.GemeenteCode)
	}
	if law.Jaar != 0 {
		fields["jaar"] = value.Int(int64(law.Jaar))
	}
	if law.Name != "" {
		fields["name"] = value.String(law.Name)
	}
	return fields
}

// ListLaws returns every distinct loaded law ID, sorted.
func (r *Registry) ListLaws() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.lawVersions))
	for id := range r.lawVersions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LawCount returns the number of distinct law IDs loaded.
func (r *Registry) LawCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lawVersions)
}

// VersionCount returns the total number of loaded law versions across
// all IDs.
func (r *Registry) VersionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, versions := range r.lawVersions {
		total += len(versions)
	}
	return total
}

// HasLaw reports whether any version of lawID is loaded.
func (r *Registry) HasLaw(lawID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.lawVersions[lawID]
	return ok
}

// HasVersion reports whether a law with this exact (ID, ValidFrom) pair
// is already loaded — used by hosts that want LoadLaw's replace-in-place
// behavior to instead read as a rejected duplicate load.
func (r *Registry) HasVersion(lawID, validFrom string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.lawVersions[lawID] {
		if v.ValidFrom == validFrom {
			return true
		}
	}
	return false
}

// UnloadLaw removes every version of lawID and its indexes, reporting
// whether it was present.
func (r *Registry) UnloadLaw(lawID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lawVersions[lawID]; !ok {
		return false
	}
	delete(r.lawVersions, lawID)
	r.removeIndexesLocked(lawID)
	return true
}

func (r *Registry) rebuildOutputIndexLocked(lawID string) {
	for key := range r.outputIndex {
		if key[0] == lawID {
			delete(r.outputIndex, key)
		}
	}
	versions := r.lawVersions[lawID]
	if len(versions) == 0 {
		return
	}
	law := versions[0]
	for _, article := range law.Articles {
		exec, ok := article.GetExecutionSpec()
		if !ok {
			continue
		}
		for _, output := range exec.Output {
			r.outputIndex[[2]string{lawID, output.Name}] = article.Number
		}
	}
}

func (r *Registry) removeIndexesLocked(lawID string) {
	for key := range r.outputIndex {
		if key[0] == lawID {
			delete(r.outputIndex, key)
		}
	}
	for key, candidates := range r.legalBasisIndex {
		kept := candidates[:0:0]
		for _, c := range candidates {
			if c != lawID {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			delete(r.legalBasisIndex, key)
		} else {
			r.legalBasisIndex[key] = kept
		}
	}
}
