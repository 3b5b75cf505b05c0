package production_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. El TxRunner falso ejecuta
// el callback directamente sobre los mismos fakes: suficiente para probar la
// lógica de los casos de uso sin base de datos.

type fakeWorkItemRepo struct {
	items map[string]*entity.WorkItem
}

func newFakeWorkItemRepo() *fakeWorkItemRepo {
	return &fakeWorkItemRepo{items: make(map[string]*entity.WorkItem)}
}

func (f *fakeWorkItemRepo) Create(item *entity.WorkItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeWorkItemRepo) GetByID(id string) (*entity.WorkItem, error) {
	item, ok := f.items[id]
	if !ok || item.DeletedAt != nil {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeWorkItemRepo) GetForUpdate(id string) (*entity.WorkItem, error) {
	return f.GetByID(id)
}

func (f *fakeWorkItemRepo) Update(item *entity.WorkItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeWorkItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WorkItem, error) {
	var out []*entity.WorkItem
	for _, item := range f.items {
		if item.CompanyID == companyID && item.DeletedAt == nil {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeWorkItemRepo) SoftDelete(id string) error {
	if item, ok := f.items[id]; ok {
		now := time.Now()
		item.DeletedAt = &now
	}
	return nil
}

type fakeReleaseRepo struct {
	releases map[string]*entity.ReleaseRecord
}

func newFakeReleaseRepo() *fakeReleaseRepo {
	return &fakeReleaseRepo{releases: make(map[string]*entity.ReleaseRecord)}
}

func (f *fakeReleaseRepo) Create(r *entity.ReleaseRecord) error {
	cp := *r
	f.releases[r.ID] = &cp
	return nil
}

func (f *fakeReleaseRepo) GetByID(id string) (*entity.ReleaseRecord, error) {
	r, ok := f.releases[id]
	if !ok || r.DeletedAt != nil {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReleaseRepo) GetForUpdate(id string) (*entity.ReleaseRecord, error) {
	return f.GetByID(id)
}

func (f *fakeReleaseRepo) ListByWorkItem(workItemID string) ([]*entity.ReleaseRecord, error) {
	var out []*entity.ReleaseRecord
	for _, r := range f.releases {
		if r.WorkItemID == workItemID && r.DeletedAt == nil {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeReleaseRepo) Update(r *entity.ReleaseRecord) error {
	cp := *r
	f.releases[r.ID] = &cp
	return nil
}

func (f *fakeReleaseRepo) UpdateStatus(id, status string) error {
	if r, ok := f.releases[id]; ok {
		r.Status = status
	}
	return nil
}

func (f *fakeReleaseRepo) SoftDelete(id string) error {
	if r, ok := f.releases[id]; ok {
		now := time.Now()
		r.DeletedAt = &now
	}
	return nil
}

type fakeInspectionRepo struct {
	inspections map[string]*entity.InspectionRecord
	steps       map[string][]*entity.StepResult // por inspección, en orden
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{
		inspections: make(map[string]*entity.InspectionRecord),
		steps:       make(map[string][]*entity.StepResult),
	}
}

func (f *fakeInspectionRepo) Create(insp *entity.InspectionRecord, steps []*entity.StepResult) error {
	cp := *insp
	f.inspections[insp.ID] = &cp
	for _, s := range steps {
		sc := *s
		f.steps[insp.ID] = append(f.steps[insp.ID], &sc)
	}
	return nil
}

func (f *fakeInspectionRepo) GetByID(id string) (*entity.InspectionRecord, error) {
	insp, ok := f.inspections[id]
	if !ok || insp.DeletedAt != nil {
		return nil, nil
	}
	cp := *insp
	return &cp, nil
}

func (f *fakeInspectionRepo) GetForUpdate(id string) (*entity.InspectionRecord, error) {
	return f.GetByID(id)
}

func (f *fakeInspectionRepo) GetOpenByRelease(releaseID string) (*entity.InspectionRecord, error) {
	for _, insp := range f.inspections {
		if insp.ReleaseID == releaseID && insp.Open() {
			cp := *insp
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInspectionRepo) ListByRelease(releaseID string) ([]*entity.InspectionRecord, error) {
	var out []*entity.InspectionRecord
	for _, insp := range f.inspections {
		if insp.ReleaseID == releaseID && insp.DeletedAt == nil {
			cp := *insp
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeInspectionRepo) UpdateHeader(insp *entity.InspectionRecord) error {
	stored, ok := f.inspections[insp.ID]
	if !ok {
		return nil
	}
	cp := *insp
	cp.ClosedAt = stored.ClosedAt
	f.inspections[insp.ID] = &cp
	return nil
}

func (f *fakeInspectionRepo) UpdateStatus(id, status string) error {
	if insp, ok := f.inspections[id]; ok {
		insp.Status = status
	}
	return nil
}

func (f *fakeInspectionRepo) Close(id string, at time.Time) error {
	if insp, ok := f.inspections[id]; ok && insp.ClosedAt == nil {
		closed := at
		insp.ClosedAt = &closed
	}
	return nil
}

func (f *fakeInspectionRepo) SoftDelete(id string) error {
	if insp, ok := f.inspections[id]; ok {
		now := time.Now()
		insp.DeletedAt = &now
	}
	return nil
}

func (f *fakeInspectionRepo) ListSteps(inspectionID string) ([]*entity.StepResult, error) {
	stored := f.steps[inspectionID]
	out := make([]*entity.StepResult, len(stored))
	for i, s := range stored {
		cp := *s
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeInspectionRepo) UpdateStep(step *entity.StepResult) error {
	for _, list := range f.steps {
		for i, s := range list {
			if s.ID == step.ID {
				cp := *step
				list[i] = &cp
				return nil
			}
		}
	}
	return nil
}

func (f *fakeInspectionRepo) ReleaseHasTouchedSteps(releaseID string) (bool, error) {
	for _, insp := range f.inspections {
		if insp.ReleaseID != releaseID || insp.DeletedAt != nil {
			continue
		}
		for _, s := range f.steps[insp.ID] {
			if s.Touched() {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeTemplateRepo struct {
	templates map[string]*entity.InspectionTemplate // por código
}

func newFakeTemplateRepo(templates ...*entity.InspectionTemplate) *fakeTemplateRepo {
	f := &fakeTemplateRepo{templates: make(map[string]*entity.InspectionTemplate)}
	for _, t := range templates {
		f.templates[t.Code] = t
	}
	return f
}

func (f *fakeTemplateRepo) GetByCode(companyID, code string) (*entity.InspectionTemplate, error) {
	t, ok := f.templates[code]
	if !ok || t.CompanyID != companyID {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTemplateRepo) List(companyID string) ([]*entity.InspectionTemplate, error) {
	var out []*entity.InspectionTemplate
	for _, t := range f.templates {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes compartidos.
type fakeTxRunner struct {
	workItems   *fakeWorkItemRepo
	releases    *fakeReleaseRepo
	inspections *fakeInspectionRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	workItemRepo repository.WorkItemRepository,
	releaseRepo repository.ReleaseRepository,
	inspectionRepo repository.InspectionRepository,
) error) error {
	return fn(f.workItems, f.releases, f.inspections)
}
