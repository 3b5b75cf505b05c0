package quality_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appquality "github.com/jhoicas/Produccion-api/internal/application/quality"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

const (
	testCompanyID = "company-1"
	testUserID    = "inspector-1"
)

type inspectionFixture struct {
	uc          *appquality.InspectionUseCase
	releases    *fakeReleaseRepo
	inspections *fakeInspectionRepo
	notifier    *fakeNotifier
}

func newInspectionFixture(t *testing.T) *inspectionFixture {
	t.Helper()
	releases := newFakeReleaseRepo()
	inspections := newFakeInspectionRepo()
	notifier := &fakeNotifier{}
	runner := &fakeQualityTxRunner{inspections: inspections, releases: releases}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := appquality.NewInspectionUseCase(runner, inspections, releases, notifier, log)
	return &inspectionFixture{uc: uc, releases: releases, inspections: inspections, notifier: notifier}
}

// seedPendingInspection crea una liberación en PENDING_INSPECTION con una
// inspección abierta de dos pasos y techo 10.
func (fx *inspectionFixture) seedPendingInspection(t *testing.T) {
	t.Helper()
	now := time.Now()
	require.NoError(t, fx.releases.Create(&entity.ReleaseRecord{
		ID:              "rel-1",
		CompanyID:       testCompanyID,
		WorkItemID:      "wi-1",
		ReleaseQuantity: d("10"),
		Status:          entity.ReleaseStatusPendingInspection,
		CreatedAt:       now,
		UpdatedAt:       now,
	}))
	insp := &entity.InspectionRecord{
		ID:           "insp-1",
		CompanyID:    testCompanyID,
		ReleaseID:    "rel-1",
		TemplateCode: "FINAL",
		Inspected:    entity.OverriddenQuantity(d("10")),
		Approved:     entity.DerivedQuantity(decimal.Zero),
		Rejected:     entity.DerivedQuantity(decimal.Zero),
		Hold:         entity.DerivedQuantity(decimal.Zero),
		Status:       entity.InspectionStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	steps := []*entity.StepResult{
		{ID: "st-1", InspectionID: "insp-1", Seq: 1, Name: "Dimensional", Status: entity.StepStatusPending},
		{ID: "st-2", InspectionID: "insp-1", Seq: 2, Name: "Soldadura", Status: entity.StepStatusPending},
	}
	require.NoError(t, fx.inspections.Create(insp, steps))
}

func TestSaveSteps_AprobacionCompletaCierraYNotifica(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	resp, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{
			{StepID: "st-1", ApprovedQty: d("10")},
			{StepID: "st-2", ApprovedQty: d("10")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InspectionStatusApproved, resp.Status)
	assert.True(t, resp.Approved.Value.Equal(d("10")))

	release, err := fx.releases.GetByID("rel-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ReleaseStatusApproved, release.Status)

	stored, err := fx.inspections.GetByID("insp-1")
	require.NoError(t, err)
	assert.False(t, stored.Open())
	assert.True(t, stored.Approved.Value.Equal(d("10")))

	// Exactamente una notificación, tras el commit.
	assert.Equal(t, []string{"insp-1"}, fx.notifier.calls)
}

func TestSaveSteps_RechazoEnviaARetrabajo(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	resp, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{
			{StepID: "st-1", ApprovedQty: d("7"), RejectedQty: d("3"), Remarks: "grietas en cordón"},
			{StepID: "st-2", ApprovedQty: d("10")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InspectionStatusRejected, resp.Status)

	// Retrabajo, nunca rechazo administrativo automático.
	release, err := fx.releases.GetByID("rel-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ReleaseStatusRework, release.Status)

	stored, err := fx.inspections.GetByID("insp-1")
	require.NoError(t, err)
	assert.False(t, stored.Open())
	assert.Empty(t, fx.notifier.calls)
}

func TestSaveSteps_TodoONada(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	// El segundo paso excede el techo (7+4 > 10): no se persiste ninguno.
	_, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{
			{StepID: "st-1", ApprovedQty: d("5")},
			{StepID: "st-2", ApprovedQty: d("7"), HoldQty: d("4")},
		},
	})
	var exceeded *domain.StepQuantityExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "Soldadura", exceeded.Step)
	assert.True(t, exceeded.Ceiling.Equal(d("10")))

	assert.Zero(t, fx.inspections.stepWrites)
	steps, err := fx.inspections.ListSteps("insp-1")
	require.NoError(t, err)
	for _, s := range steps {
		assert.Equal(t, entity.StepStatusPending, s.Status)
		assert.True(t, s.ApprovedQty.IsZero())
	}
	release, err := fx.releases.GetByID("rel-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ReleaseStatusPendingInspection, release.Status)
}

func TestSaveSteps_PasoDesconocido(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	_, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{{StepID: "no-existe", ApprovedQty: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveSteps_ParcialDejaEnProgreso(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	resp, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{{StepID: "st-1", ApprovedQty: d("10")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InspectionStatusInProgress, resp.Status)
	// Un paso PENDING arrastra el mínimo aprobado a cero.
	assert.True(t, resp.Approved.Value.IsZero())

	release, err := fx.releases.GetByID("rel-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ReleaseStatusPendingInspection, release.Status)

	stored, err := fx.inspections.GetByID("insp-1")
	require.NoError(t, err)
	assert.True(t, stored.Open())
}

func TestSaveSteps_NoPrivilegiadoPersisteSoloEstado(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	resp, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleInspector, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{
			{StepID: "st-1", ApprovedQty: d("10")},
			{StepID: "st-2", ApprovedQty: d("10")},
		},
	})
	require.NoError(t, err)
	// La respuesta refleja los totales recalculados en memoria...
	assert.True(t, resp.Approved.Value.Equal(d("10")))

	// ...pero en la cabecera persistida solo cambió el estado.
	stored, err := fx.inspections.GetByID("insp-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InspectionStatusApproved, stored.Status)
	assert.True(t, stored.Approved.Value.IsZero())

	// La retroalimentación del flujo sí aplica.
	release, err := fx.releases.GetByID("rel-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ReleaseStatusApproved, release.Status)
	assert.Equal(t, []string{"insp-1"}, fx.notifier.calls)
}

func TestSaveSteps_InspeccionCerrada(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)
	require.NoError(t, fx.inspections.Close("insp-1", time.Now()))

	_, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{{StepID: "st-1", ApprovedQty: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSaveSteps_FalloDelNotificadorNoRevierte(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)
	fx.notifier.err = errors.New("smtp caído")

	_, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{
			{StepID: "st-1", ApprovedQty: d("10")},
			{StepID: "st-2", ApprovedQty: d("10")},
		},
	})
	require.NoError(t, err)

	release, err := fx.releases.GetByID("rel-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ReleaseStatusApproved, release.Status)
}

func TestSaveSteps_OtraEmpresa(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	_, err := fx.uc.SaveSteps(context.Background(), "otra-empresa", testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{{StepID: "st-1", ApprovedQty: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetOverride_CongelaYRecalculaIdentidad(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	// Veredicto con retención: la inspección queda en HOLD y sigue abierta.
	_, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{
			{StepID: "st-1", ApprovedQty: d("8"), HoldQty: d("2")},
		},
	})
	require.NoError(t, err)

	resp, err := fx.uc.SetOverride(context.Background(), testCompanyID, "insp-1", dto.SetOverrideRequest{
		Field: entity.FieldApproved,
		Value: d("6"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Approved.Overridden)
	assert.True(t, resp.Approved.Value.Equal(d("6")))
	// Inspected sigue sobrescrito al techo original.
	assert.True(t, resp.Inspected.Overridden)
	assert.True(t, resp.Inspected.Value.Equal(d("10")))
}

func TestClearOverride_SinSobrescrituraFalla(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	_, err := fx.uc.ClearOverride(context.Background(), testCompanyID, "insp-1", dto.ClearOverrideRequest{
		Field: entity.FieldApproved,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOverrideState)
}

func TestClearOverride_InspectedVuelveADerivarse(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	// Veredictos con retención: HOLD no cierra la pasada.
	_, err := fx.uc.SaveSteps(context.Background(), testCompanyID, testUserID, entity.RoleAdmin, "insp-1", dto.SaveStepsRequest{
		Steps: []dto.StepEditDTO{
			{StepID: "st-1", ApprovedQty: d("4"), HoldQty: d("1")},
			{StepID: "st-2", ApprovedQty: d("4"), HoldQty: d("1")},
		},
	})
	require.NoError(t, err)

	resp, err := fx.uc.ClearOverride(context.Background(), testCompanyID, "insp-1", dto.ClearOverrideRequest{
		Field: entity.FieldInspected,
	})
	require.NoError(t, err)
	assert.False(t, resp.Inspected.Overridden)
	// aprobado mín 4 + retenido 1+1
	assert.True(t, resp.Inspected.Value.Equal(d("6")))
}

func TestUpdateMeta_EditaLoteYTransmittal(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	ref := "TR-045"
	resp, err := fx.uc.UpdateMeta(context.Background(), testCompanyID, "insp-1", dto.UpdateInspectionMetaRequest{
		Entries: []dto.DrawingEntryDTO{
			{DrawingNo: "D-900", Quantity: "10", Unit: "pcs", RFFRef: "RFF-3"},
		},
		TransmittalRef: &ref,
	})
	require.NoError(t, err)
	assert.Equal(t, "TR-045", resp.TransmittalRef)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "D-900", resp.Entries[0].DrawingNo)
}

func TestListByRelease_DevuelvePasadasConPasos(t *testing.T) {
	fx := newInspectionFixture(t)
	fx.seedPendingInspection(t)

	out, err := fx.uc.ListByRelease(testCompanyID, "rel-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "insp-1", out[0].ID)
	assert.Len(t, out[0].Steps, 2)
}
