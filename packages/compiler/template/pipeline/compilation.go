package pipeline

import (
	"tplc-go/packages/compiler/constant"
	"tplc-go/packages/compiler/output"
	"tplc-go/packages/compiler/render3"
	"tplc-go/packages/compiler/template/pipeline/ir"
)

// CompilationJobKind distinguishes template jobs from host binding jobs.
type CompilationJobKind int

const (
	CompilationJobKindTmpl CompilationJobKind = iota
	CompilationJobKindHost
	// CompilationJobKindBoth indicates logic that applies to both kinds.
	CompilationJobKindBoth
)

// TemplateCompilationMode represents possible modes in which a component's
// template can be compiled.
type TemplateCompilationMode int

const (
	// TemplateCompilationModeFull supports the full instruction set,
	// including directives.
	TemplateCompilationModeFull TemplateCompilationMode = iota
	// TemplateCompilationModeDomOnly uses a narrower instruction set that
	// doesn't support directives and allows optimizations.
	TemplateCompilationModeDomOnly
)

// DeferBlockDepsEmitMode describes how deferred-block dependencies are
// resolved.
type DeferBlockDepsEmitMode int

const (
	// DeferBlockDepsEmitModePerBlock resolves dependencies with one function
	// per block.
	DeferBlockDepsEmitModePerBlock DeferBlockDepsEmitMode = iota
	// DeferBlockDepsEmitModePerComponent resolves dependencies with a single
	// function per component.
	DeferBlockDepsEmitModePerComponent
)

// R3ComponentDeferMetadata is the externally resolved metadata for a
// component's deferred blocks, keyed by block node identity.
type R3ComponentDeferMetadata struct {
	Mode DeferBlockDepsEmitMode
	// Blocks maps each deferred block to its dependency resolver in
	// per-block mode. A block may map to a nil resolver, but every ingested
	// block must be present.
	Blocks map[*render3.DeferredBlock]output.OutputExpression
	// DependenciesFn is the shared resolver in per-component mode.
	DependenciesFn output.OutputExpression
}

// CompilationJob is an entire ongoing compilation, which will result in one
// or more template functions when complete. Contains one or more
// corresponding compilation units.
type CompilationJob struct {
	ComponentName string
	Pool          *constant.ConstantPool
	Compatibility ir.CompatibilityMode
	Mode          TemplateCompilationMode
	Kind          CompilationJobKind
	nextXrefId    ir.XrefId
	rootXref      ir.XrefId
}

// RootXref returns the xref of the job's root unit.
func (j *CompilationJob) RootXref() ir.XrefId { return j.rootXref }

func newCompilationJob(componentName string, pool *constant.ConstantPool, compatibility ir.CompatibilityMode, mode TemplateCompilationMode) *CompilationJob {
	return &CompilationJob{
		ComponentName: componentName,
		Pool:          pool,
		Compatibility: compatibility,
		Mode:          mode,
		Kind:          CompilationJobKindBoth,
	}
}

// AllocateXrefId generates a new unique ir.XrefId in this job.
func (j *CompilationJob) AllocateXrefId() ir.XrefId {
	id := j.nextXrefId
	j.nextXrefId++
	return id
}

// CompilationUnit is a unit compiled into a single template function. Views
// and host bindings are units.
type CompilationUnit interface {
	GetXref() ir.XrefId
	GetJob() *CompilationJob
	GetCreate() *ir.OpList
	GetUpdate() *ir.OpList
	GetFnName() *string
	SetFnName(name string)
}

// ComponentCompilationJob is compilation-in-progress of a whole component's
// template, including the main template and any embedded views.
type ComponentCompilationJob struct {
	*CompilationJob
	Root *ViewCompilationUnit
	// Views is the arena of all units in the job, keyed by xref.
	Views              map[ir.XrefId]*ViewCompilationUnit
	Consts             []output.OutputExpression
	ConstsInitializers []output.OutputStatement
	// DeferMeta is the side map of externally resolved deferred-block
	// metadata.
	DeferMeta R3ComponentDeferMetadata
	// AllDeferrableDepsFn resolves every deferrable dependency of the
	// component, when per-component defer resolution is in use.
	AllDeferrableDepsFn *output.ReadVarExpr
}

// NewComponentCompilationJob creates a ComponentCompilationJob with an
// allocated root view.
func NewComponentCompilationJob(componentName string, pool *constant.ConstantPool, compatibility ir.CompatibilityMode, mode TemplateCompilationMode, deferMeta R3ComponentDeferMetadata, allDeferrableDepsFn *output.ReadVarExpr) *ComponentCompilationJob {
	job := &ComponentCompilationJob{
		CompilationJob:      newCompilationJob(componentName, pool, compatibility, mode),
		Views:               make(map[ir.XrefId]*ViewCompilationUnit),
		DeferMeta:           deferMeta,
		AllDeferrableDepsFn: allDeferrableDepsFn,
	}
	job.CompilationJob.Kind = CompilationJobKindTmpl
	root := newViewCompilationUnit(job, job.AllocateXrefId(), nil)
	job.Root = root
	job.Views[root.Xref] = root
	job.CompilationJob.rootXref = root.Xref
	return job
}

// AllocateView adds a ViewCompilationUnit for a new embedded view to this
// compilation.
func (j *ComponentCompilationJob) AllocateView(parent ir.XrefId) *ViewCompilationUnit {
	unit := newViewCompilationUnit(j, j.AllocateXrefId(), &parent)
	j.Views[unit.Xref] = unit
	return unit
}

// GetUnits returns all view compilation units of the job.
func (j *ComponentCompilationJob) GetUnits() []CompilationUnit {
	units := make([]CompilationUnit, 0, len(j.Views))
	for _, unit := range j.Views {
		units = append(units, unit)
	}
	return units
}

// GetRoot returns the root view compilation unit.
func (j *ComponentCompilationJob) GetRoot() CompilationUnit { return j.Root }

// GetFnSuffix returns the suffix used when naming the job's functions.
func (j *ComponentCompilationJob) GetFnSuffix() string { return "Template" }

// AddConst adds a constant to the compilation and returns its index in the
// consts array. Equivalent constants are deduplicated.
func (j *ComponentCompilationJob) AddConst(newConst output.OutputExpression, initializers []output.OutputStatement) ir.ConstIndex {
	for idx := 0; idx < len(j.Consts); idx++ {
		if j.Consts[idx].IsEquivalent(newConst) {
			return ir.ConstIndex(idx)
		}
	}
	idx := len(j.Consts)
	j.Consts = append(j.Consts, newConst)
	j.ConstsInitializers = append(j.ConstsInitializers, initializers...)
	return ir.ConstIndex(idx)
}

// ViewCompilationUnit is compilation-in-progress of an individual view
// within a template.
type ViewCompilationUnit struct {
	Job    *ComponentCompilationJob
	Xref   ir.XrefId
	Parent *ir.XrefId
	Create *ir.OpList
	Update *ir.OpList
	FnName *string
	// ContextVariables maps context variable names available in this view to
	// the property on the context object that they alias, or ir.CTX_REF for
	// a reference to the context itself.
	ContextVariables map[string]string
	// Aliases are derived values available in this view's scope.
	Aliases []*ir.AliasVariable
}

func newViewCompilationUnit(job *ComponentCompilationJob, xref ir.XrefId, parent *ir.XrefId) *ViewCompilationUnit {
	return &ViewCompilationUnit{
		Job:              job,
		Xref:             xref,
		Parent:           parent,
		Create:           ir.NewOpList(),
		Update:           ir.NewOpList(),
		ContextVariables: make(map[string]string),
	}
}

// GetXref returns the unit's xref.
func (v *ViewCompilationUnit) GetXref() ir.XrefId { return v.Xref }

// GetJob returns the owning job.
func (v *ViewCompilationUnit) GetJob() *CompilationJob { return v.Job.CompilationJob }

// GetCreate returns the create operation list.
func (v *ViewCompilationUnit) GetCreate() *ir.OpList { return v.Create }

// GetUpdate returns the update operation list.
func (v *ViewCompilationUnit) GetUpdate() *ir.OpList { return v.Update }

// GetFnName returns the generated function name, once assigned.
func (v *ViewCompilationUnit) GetFnName() *string { return v.FnName }

// SetFnName assigns the generated function name.
func (v *ViewCompilationUnit) SetFnName(name string) { v.FnName = &name }

// HostBindingCompilationJob is compilation-in-progress of a host binding
// set, which contains a single unit.
type HostBindingCompilationJob struct {
	*CompilationJob
	Root *HostBindingCompilationUnit
}

// NewHostBindingCompilationJob creates a HostBindingCompilationJob.
func NewHostBindingCompilationJob(componentName string, pool *constant.ConstantPool, compatibility ir.CompatibilityMode, mode TemplateCompilationMode) *HostBindingCompilationJob {
	job := &HostBindingCompilationJob{
		CompilationJob: newCompilationJob(componentName, pool, compatibility, mode),
	}
	job.CompilationJob.Kind = CompilationJobKindHost
	job.Root = &HostBindingCompilationUnit{
		Job:    job,
		Xref:   job.AllocateXrefId(),
		Create: ir.NewOpList(),
		Update: ir.NewOpList(),
	}
	job.CompilationJob.rootXref = job.Root.Xref
	return job
}

// GetUnits returns the job's single unit.
func (j *HostBindingCompilationJob) GetUnits() []CompilationUnit {
	return []CompilationUnit{j.Root}
}

// GetRoot returns the root host binding compilation unit.
func (j *HostBindingCompilationJob) GetRoot() CompilationUnit { return j.Root }

// GetFnSuffix returns the suffix used when naming the job's functions.
func (j *HostBindingCompilationJob) GetFnSuffix() string { return "HostBindings" }

// HostBindingCompilationUnit is the single compilation unit of a host
// binding job.
type HostBindingCompilationUnit struct {
	Job    *HostBindingCompilationJob
	Xref   ir.XrefId
	Create *ir.OpList
	Update *ir.OpList
	FnName *string
	// Attributes holds the extracted host attribute literals, assigned in a
	// later phase.
	Attributes *output.LiteralArrayExpr
}

// GetXref returns the unit's xref.
func (h *HostBindingCompilationUnit) GetXref() ir.XrefId { return h.Xref }

// GetJob returns the owning job.
func (h *HostBindingCompilationUnit) GetJob() *CompilationJob { return h.Job.CompilationJob }

// GetCreate returns the create operation list.
func (h *HostBindingCompilationUnit) GetCreate() *ir.OpList { return h.Create }

// GetUpdate returns the update operation list.
func (h *HostBindingCompilationUnit) GetUpdate() *ir.OpList { return h.Update }

// GetFnName returns the generated function name, once assigned.
func (h *HostBindingCompilationUnit) GetFnName() *string { return h.FnName }

// SetFnName assigns the generated function name.
func (h *HostBindingCompilationUnit) SetFnName(name string) { h.FnName = &name }
