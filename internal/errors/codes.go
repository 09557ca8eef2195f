// Package errors provides centralized error code definitions and a
// structured report type for churf, in the style of a compiler's
// AI-and-human-friendly diagnostic taxonomy.
package errors

// Error code constants organized by phase. Each constant names a specific
// failure condition raised by the type checker or monomorphizer.
const (
	// ============================================================================
	// Type checking errors (TYC###)
	// ============================================================================

	// TYC001 indicates a TVar referencing a type variable not in scope.
	TYC001 = "TYC001"

	// TYC002 indicates a TEVar referencing an existential unknown to Γ.
	TYC002 = "TYC002"

	// TYC003 indicates a constructor reference with no matching data
	// injection.
	TYC003 = "TYC003"

	// TYC004 indicates a variable reference with no binding anywhere
	// reachable (local context, signature table, or auto-extension).
	TYC004 = "TYC004"

	// TYC005 indicates two types failed to stand in a subtyping
	// relationship.
	TYC005 = "TYC005"

	// TYC006 indicates an application where the function position's type
	// is not a function (after exhausting TAll/TEVar dispatch).
	TYC006 = "TYC006"

	// TYC007 indicates a constructor pattern applied to the wrong number
	// of sub-patterns.
	TYC007 = "TYC007"

	// TYC008 indicates a top-level binding inferred without an explicit
	// signature still has unsolved existentials in its local context.
	TYC008 = "TYC008"

	// TYC009 indicates a data declaration whose head shape is malformed
	// (not TData applied to distinct bound TVars, or an injection whose
	// return type doesn't match the declared head).
	TYC009 = "TYC009"

	// TYC010 indicates a constructor's argument types reference type
	// parameters not bound by its data declaration's head.
	TYC010 = "TYC010"

	// ============================================================================
	// Monomorphizer errors (MONO###)
	// ============================================================================

	// MONO001 indicates morphBind's structural pairing of a declared
	// (possibly polymorphic) type against a concrete instantiation failed
	// — an internal bug, never a user-facing type error.
	MONO001 = "MONO001"

	// MONO002 indicates mono() encountered a TVar with no entry in the
	// current specialization mapping — an internal bug indicating an
	// earlier stage left a type variable unquantified.
	MONO002 = "MONO002"

	// MONO003 indicates no top-level binding named "main" was found.
	MONO003 = "MONO003"

	// MONO004 indicates morphExp encountered a nested ELet, which the
	// monomorphizer does not support (lambda lifting is assumed to have
	// removed all nested lets before this stage runs).
	MONO004 = "MONO004"

	// MONO005 indicates an EId referencing a name with no matching global
	// binding in the monomorphizer's input.
	MONO005 = "MONO005"

	// ============================================================================
	// Loader errors (LDR1##) — expansion, program-loading shape errors
	// ============================================================================

	// LDR101 indicates a structurally malformed program document (e.g. a
	// binding with no right-hand side, or a duplicate signature).
	LDR101 = "LDR101"
)
