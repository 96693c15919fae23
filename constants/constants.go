// Package constants holds process-wide environment variable names and the
// compiled-in size/depth bounds that keep law documents and evaluations
// within the memory and recursion budget described by the engine design.
package constants

const (
	EnvLogLevel    = "REGELRECHT_LOG_LEVEL"
	EnvDebug       = "REGELRECHT_DEBUG"
	EnvOtelEnabled = "REGELRECHT_OTEL_ENABLED"
	EnvOtelEndpoint = "REGELRECHT_OTEL_ENDPOINT"
)

const (
	// MaxDocumentBytes bounds a law document's raw YAML size, before parse.
	MaxDocumentBytes = 1_000_000

	// MaxArticles bounds the number of articles in a single law.
	MaxArticles = 1000

	// MaxArticleArray bounds parameters/inputs/outputs/actions per article,
	// and values/conditions per action.
	MaxArticleArray = 1000

	// MaxLoadedLaws bounds the number of distinct law slugs a registry holds.
	MaxLoadedLaws = 100

	// MaxOperationDepth bounds nested-operation recursion in the evaluator.
	MaxOperationDepth = 100

	// MaxPropertyDepth bounds dotted property-access recursion.
	MaxPropertyDepth = 32

	// MaxCrossLawDepth bounds the cross-law resolution call stack.
	MaxCrossLawDepth = 20

	// DefaultMemoizeTTLSeconds is the lifetime of a within-call memoization
	// entry; it only needs to outlive a single top-level evaluation.
	DefaultMemoizeTTLSeconds = 60

	// MaxSafeInteger is the largest integer exactly representable in a
	// float64 (2^53); beyond it, Int->Float conversion is best-effort.
	MaxSafeInteger = 1 << 53
	MinSafeInteger = -(1 << 53)
)

// AppName is used for log attribution and the embedded host's identity.
const AppName = "regelrecht-engine"
