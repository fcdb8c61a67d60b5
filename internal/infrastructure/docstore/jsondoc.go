package docstore

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/jhoicas/veon-api/internal/domain/repository"
)

// buildWhere normaliza el filtro a valores JSON nativos y aplica el tenant.
// userID explícito tiene prioridad sobre una clave "userId" dentro del filtro.
func buildWhere(filter repository.Filter, userID string) (map[string]any, error) {
	where := make(map[string]any, len(filter)+1)
	for k, v := range filter {
		if k == fieldUserID || isNil(v) {
			continue
		}
		nv, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("filtro %q: %w", k, err)
		}
		where[k] = nv
	}
	if userID != "" {
		where[fieldUserID] = userID
	}
	return where, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// normalize convierte v a la representación que produce json.Unmarshal en un any.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatchFields indica si el documento raw tiene exactamente los valores de where.
func MatchFields(raw []byte, where map[string]any) (bool, error) {
	if len(where) == 0 {
		return true, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}
	for k, want := range where {
		nw, err := normalize(want)
		if err != nil {
			return false, err
		}
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, nw) {
			return false, nil
		}
	}
	return true, nil
}

// IncrementField suma delta al campo entero field de raw y refresca updatedAt.
// Devuelve *repository.GuardError si el resultado sería negativo.
func IncrementField(collection, id string, raw []byte, field string, delta int64, at time.Time) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	var current int64
	if v, ok := fields[field]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &current); err != nil {
			return nil, fmt.Errorf("campo %s no es entero: %w", field, err)
		}
	}
	next := current + delta
	if next < 0 {
		return nil, &repository.GuardError{Collection: collection, ID: id, Field: field, Current: current, Delta: delta}
	}
	fields[field], _ = json.Marshal(next)
	fields[fieldUpdatedAt], _ = json.Marshal(at.UTC())
	return json.Marshal(fields)
}

// mergePatch fusiona patch sobre raw. id y createdAt son de una sola escritura; updatedAt
// siempre avanza respecto al valor almacenado.
func mergePatch(raw []byte, patch repository.Patch, now time.Time) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	for k, v := range patch {
		if k == fieldID || k == fieldCreatedAt || k == fieldUpdatedAt || isNil(v) {
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("campo %s: %w", k, err)
		}
		fields[k] = b
	}
	now = now.UTC()
	var prev time.Time
	if v, ok := fields[fieldUpdatedAt]; ok {
		_ = json.Unmarshal(v, &prev)
	}
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	fields[fieldUpdatedAt], _ = json.Marshal(now)
	return json.Marshal(fields)
}
