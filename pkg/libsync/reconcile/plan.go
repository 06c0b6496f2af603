/*
Copyright 2025 Flant JSC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reconcile

import (
	"github.com/samber/lo"
)

type StepKind int

const (
	StepPull StepKind = iota
	StepRetag
	StepPush
	StepCleanupSource
	StepCleanupTarget
)

// ActionStep is one remediation intent. Ref is the image reference the step
// operates on, NewRef is the retag destination and is set only for StepRetag.
type ActionStep struct {
	Kind   StepKind
	Ref    string
	NewRef string
}

// Command renders the step as the docker CLI command it stands for.
func (s ActionStep) Command() string {
	switch s.Kind {
	case StepPull:
		return "docker pull " + s.Ref
	case StepRetag:
		return "docker tag " + s.Ref + " " + s.NewRef
	case StepPush:
		return "docker push " + s.Ref
	default:
		return "docker rmi " + s.Ref
	}
}

// ActionPlan is the ordered remediation sequence derived for one identity.
type ActionPlan struct {
	Steps []ActionStep
}

func (p ActionPlan) Empty() bool {
	return len(p.Steps) == 0
}

func (p ActionPlan) Commands() []string {
	return lo.Map(p.Steps, func(step ActionStep, _ int) string {
		return step.Command()
	})
}

// DerivePlan renders the remediation steps for one classified identity. Only
// MissingOnTarget yields transfer steps, conflicting identities are left for
// a manual operator decision and in-sync identities need nothing.
func DerivePlan(status Status, identity ImageIdentity, sourceHost, targetHost string) ActionPlan {
	if status != StatusMissingOnTarget {
		return ActionPlan{}
	}

	sourceRef := identity.RefOn(sourceHost)
	targetRef := identity.RefOn(targetHost)

	return ActionPlan{Steps: []ActionStep{
		{Kind: StepPull, Ref: sourceRef},
		{Kind: StepRetag, Ref: sourceRef, NewRef: targetRef},
		{Kind: StepPush, Ref: targetRef},
		{Kind: StepCleanupSource, Ref: sourceRef},
		{Kind: StepCleanupTarget, Ref: targetRef},
	}}
}
