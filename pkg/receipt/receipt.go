package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator генератор идентификаторов чеков и платежных транзакций
// Идентификатор чека создается один раз при бронировании и далее неизменяем
type Generator struct{}

// New создает новый генератор
func New() Generator {
	return Generator{}
}

// NewReceiptID возвращает уникальный идентификатор чека вида RCP-<ts>-<rand>
func (Generator) NewReceiptID() string {
	return fmt.Sprintf("RCP-%d-%s", time.Now().UnixMilli(), randomSuffix())
}

// NewTransactionID возвращает уникальный идентификатор платежной транзакции
func (Generator) NewTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
}
