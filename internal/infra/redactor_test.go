package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactorClient_Generar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "clave", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hola", req.Contents[0].Parts[0].Text)
		assert.NotNil(t, req.SystemInstruction)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Memoria descriptiva. "}]}}]}`))
	}))
	defer srv.Close()

	c := NewRedactorClient(srv.URL+"/", "gemini-test")
	texto, err := c.Generar(context.Background(), "clave", "hola")
	require.NoError(t, err)
	assert.Equal(t, "Memoria descriptiva.", texto)
}

func TestRedactorClient_Errores(t *testing.T) {
	vacio := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer vacio.Close()
	_, err := NewRedactorClient(vacio.URL, "m").Generar(context.Background(), "k", "p")
	assert.ErrorIs(t, err, ErrRespuestaVacia)

	caido := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer caido.Close()
	_, err = NewRedactorClient(caido.URL, "m").Generar(context.Background(), "k", "p")
	assert.ErrorContains(t, err, "403")
}
