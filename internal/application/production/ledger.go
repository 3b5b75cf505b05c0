package production

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// Libro de cantidades del renglón de trabajo (funciones puras sobre entidades).
// Invariante: la suma de liberaciones no borradas nunca supera la cantidad
// pedida; las operaciones que lo violarían se rechazan, nunca se recortan.

// ReleasedSum suma las cantidades de las liberaciones no borradas.
func ReleasedSum(releases []*entity.ReleaseRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range releases {
		if r.DeletedAt != nil {
			continue
		}
		sum = sum.Add(r.ReleaseQuantity)
	}
	return sum
}

// Remaining devuelve cantidad pedida menos lo liberado.
func Remaining(item *entity.WorkItem, releases []*entity.ReleaseRecord) decimal.Decimal {
	return item.OrderedQuantity.Sub(ReleasedSum(releases))
}

// BalanceLine una liberación con su saldo después de ella.
type BalanceLine struct {
	Release *entity.ReleaseRecord
	Balance decimal.Decimal // pedido − acumulado liberado hasta esta liberación
}

// RunningBalance ordena las liberaciones por CreatedAt descendente y acumula
// de arriba hacia abajo, reportando el saldo tras cada liberación para
// revisión del operador.
func RunningBalance(item *entity.WorkItem, releases []*entity.ReleaseRecord) []BalanceLine {
	live := make([]*entity.ReleaseRecord, 0, len(releases))
	for _, r := range releases {
		if r.DeletedAt == nil {
			live = append(live, r)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})
	lines := make([]BalanceLine, 0, len(live))
	cum := decimal.Zero
	for _, r := range live {
		cum = cum.Add(r.ReleaseQuantity)
		lines = append(lines, BalanceLine{Release: r, Balance: item.OrderedQuantity.Sub(cum)})
	}
	return lines
}

// ValidateRelease valida la cantidad de una liberación nueva o editada.
// existingQuantity es la cantidad actual de la liberación en edición (cero al
// crear): permite editar sin "devolver" primero su propia cantidad al saldo.
// Falla con QuantityExceededError cuando candidate > remaining + existing.
func ValidateRelease(item *entity.WorkItem, releases []*entity.ReleaseRecord, candidate, existingQuantity decimal.Decimal) error {
	if candidate.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	ceiling := Remaining(item, releases).Add(existingQuantity)
	if candidate.GreaterThan(ceiling) {
		return &domain.QuantityExceededError{Ceiling: ceiling}
	}
	return nil
}
