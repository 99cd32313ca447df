package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"crkitchen/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoEncontrado   = errors.New("documento no encontrado")
	ErrClaveFaltante  = errors.New("el documento no tiene id ni codigo")
	ErrDocumentoVacio = errors.New("el documento no es un objeto JSON")
)

// DocumentoRepository stores opaque JSON documents per collection. It reads
// the content only to extract the key.
type DocumentoRepository interface {
	Migrar(ctx context.Context) error
	Listar(ctx context.Context, recurso model.Recurso) ([]model.Documento, error)
	ObtenerPorID(ctx context.Context, recurso model.Recurso, id string) (*model.Documento, error)
	Guardar(ctx context.Context, recurso model.Recurso, data json.RawMessage) (string, error)
	ReemplazarLote(ctx context.Context, recurso model.Recurso, docs []json.RawMessage) (int, error)
	Eliminar(ctx context.Context, recurso model.Recurso, id string) error
}

type documentoRepository struct{ db *gorm.DB }

func NewDocumentoRepository(db *gorm.DB) DocumentoRepository {
	return &documentoRepository{db: db}
}

// Migrar creates one table per collection.
func (r *documentoRepository) Migrar(ctx context.Context) error {
	for _, rec := range model.Recursos {
		if err := r.db.WithContext(ctx).Table(string(rec)).AutoMigrate(&model.Documento{}); err != nil {
			return fmt.Errorf("migrar %s: %w", rec, err)
		}
	}
	return nil
}

func (r *documentoRepository) Listar(ctx context.Context, recurso model.Recurso) ([]model.Documento, error) {
	var list []model.Documento
	err := r.db.WithContext(ctx).Table(string(recurso)).Order("updated_at DESC").Find(&list).Error
	return list, err
}

func (r *documentoRepository) ObtenerPorID(ctx context.Context, recurso model.Recurso, id string) (*model.Documento, error) {
	var doc model.Documento
	err := r.db.WithContext(ctx).Table(string(recurso)).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Guardar inserts or replaces the document and returns the key used.
func (r *documentoRepository) Guardar(ctx context.Context, recurso model.Recurso, data json.RawMessage) (string, error) {
	doc, err := nuevoDocumento(recurso, data)
	if err != nil {
		return "", err
	}
	if err := upsert(r.db.WithContext(ctx), recurso, []model.Documento{doc}); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// ReemplazarLote stores every document in one transaction; if one fails none
// is stored.
func (r *documentoRepository) ReemplazarLote(ctx context.Context, recurso model.Recurso, docs []json.RawMessage) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	rows := make([]model.Documento, 0, len(docs))
	for i, raw := range docs {
		doc, err := nuevoDocumento(recurso, raw)
		if err != nil {
			return 0, fmt.Errorf("documento %d: %w", i, err)
		}
		rows = append(rows, doc)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsert(tx, recurso, rows)
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *documentoRepository) Eliminar(ctx context.Context, recurso model.Recurso, id string) error {
	res := r.db.WithContext(ctx).Table(string(recurso)).Where("id = ?", id).Delete(&model.Documento{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

func upsert(db *gorm.DB, recurso model.Recurso, rows []model.Documento) error {
	return db.Table(string(recurso)).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&rows).Error
}

func nuevoDocumento(recurso model.Recurso, data json.RawMessage) (model.Documento, error) {
	clave, err := ExtraerClave(recurso, data)
	if err != nil {
		return model.Documento{}, err
	}
	return model.Documento{ID: clave, Data: datatypes.JSON(data), UpdatedAt: time.Now().UTC()}, nil
}

// ExtraerClave uses id, then codigo, then the collection's default key.
func ExtraerClave(recurso model.Recurso, data json.RawMessage) (string, error) {
	var campos map[string]interface{}
	if err := json.Unmarshal(data, &campos); err != nil || campos == nil {
		return "", ErrDocumentoVacio
	}
	for _, k := range []string{"id", "codigo"} {
		if s := claveTexto(campos[k]); s != "" {
			return s, nil
		}
	}
	if def := recurso.ClavePorDefecto(); def != "" {
		return def, nil
	}
	return "", ErrClaveFaltante
}

func claveTexto(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
