package reconcile

// Record ties one identity to what both registries said about it. Records are
// immutable once built.
type Record struct {
	Identity ImageIdentity
	Source   DigestObservation
	Target   DigestObservation
	Status   Status
	Plan     ActionPlan

	// LookupErr is set only on unresolved records, alongside StatusUnknown.
	LookupErr error
}

// NewRecord classifies the identity and derives its remediation plan.
func NewRecord(identity ImageIdentity, source, target DigestObservation, sourceHost, targetHost string) Record {
	status := Classify(source, target)
	return Record{
		Identity: identity,
		Source:   source,
		Target:   target,
		Status:   status,
		Plan:     DerivePlan(status, identity, sourceHost, targetHost),
	}
}

// NewUnresolvedRecord retains an identity whose digest lookup failed on
// either side. Such identities are reported as unknown, never as absent.
func NewUnresolvedRecord(identity ImageIdentity, lookupErr error) Record {
	return Record{
		Identity:  identity,
		Status:    StatusUnknown,
		LookupErr: lookupErr,
	}
}
