package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Count entero que acepta número JSON o string numérico ("12").
// Valores no enteros o no numéricos se rechazan al decodificar.
type Count int

// UnmarshalJSON implementa json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("valor numérico inválido: %s", string(data))
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("se esperaba un entero: %s", string(data))
	}
	*c = Count(int(f))
	return nil
}

// IntPtr devuelve el valor como *int (nil si el campo no vino).
func (c *Count) IntPtr() *int {
	if c == nil {
		return nil
	}
	v := int(*c)
	return &v
}

// CreateItemRequest body de POST /products. Cualquier campo de owner en el body se ignora.
type CreateItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity *Count `json:"quantity"`
	MinStock *Count `json:"minStock"`
}

// UpdateQuantityRequest body de PUT /products/:id. Solo quantity es mutable.
type UpdateQuantityRequest struct {
	Quantity *Count `json:"quantity"`
}

// ItemResponse salida de un producto. Status se deriva en cada lectura.
type ItemResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Quantity  int        `json:"quantity"`
	MinStock  int        `json:"minStock"`
	UserID    string     `json:"userId"`
	Status    string     `json:"status,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ProductEnvelope respuesta {"product": {...}}.
type ProductEnvelope struct {
	Product ItemResponse `json:"product"`
}

// ProductListResponse respuesta {"products": [...]}; nunca null.
type ProductListResponse struct {
	Products []ItemResponse `json:"products"`
}
