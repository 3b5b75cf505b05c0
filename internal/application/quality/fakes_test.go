package quality_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Fakes en memoria de los puertos que usa el caso de uso de inspección.

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
	steps       map[string][]*entity.StepResult
	stepWrites  int // UpdateStep acumulado, para verificar todo-o-nada
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
	f.stepWrites++
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

// fakeQualityTxRunner ejecuta el callback directo sobre los fakes compartidos.
type fakeQualityTxRunner struct {
	inspections *fakeInspectionRepo
	releases    *fakeReleaseRepo
}

func (f *fakeQualityTxRunner) RunQuality(_ context.Context, fn func(
	inspectionRepo repository.InspectionRepository,
	releaseRepo repository.ReleaseRepository,
) error) error {
	return fn(f.inspections, f.releases)
}

// fakeNotifier cuenta las notificaciones de aprobación.
type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) ReleaseApproved(_ context.Context, inspectionID string) error {
	f.calls = append(f.calls, inspectionID)
	return f.err
}
