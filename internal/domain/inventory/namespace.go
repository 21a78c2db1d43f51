package inventory

import (
	"strings"

	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
)

// keyPrefix espacio de claves de productos en el store clave-valor.
const keyPrefix = "products"

// OwnerPrefix devuelve el prefijo "products:{ownerID}:" que acota todos los productos de un usuario.
// Es el único lugar donde se construye el namespace; los handlers nunca arman claves a mano.
func OwnerPrefix(ownerID string) string {
	return keyPrefix + ":" + ownerID + ":"
}

// ItemKey devuelve la clave determinista "products:{ownerID}:{itemID}".
func ItemKey(ownerID, itemID string) (string, error) {
	if err := checkSegment(ownerID); err != nil {
		return "", err
	}
	if err := checkSegment(itemID); err != nil {
		return "", err
	}
	return OwnerPrefix(ownerID) + itemID, nil
}

// CheckOwnership verifica que el producto leído pertenece al llamador.
// Un producto ajeno se reporta como inexistente (ErrNotFound), no como prohibido.
func CheckOwnership(ownerID string, item *entity.InventoryItem) error {
	if item == nil || ownerID == "" || item.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	return nil
}

// checkSegment rechaza segmentos vacíos o con ':' que romperían el aislamiento por prefijo.
func checkSegment(s string) error {
	if s == "" || strings.Contains(s, ":") {
		return domain.ErrInvalidInput
	}
	return nil
}
