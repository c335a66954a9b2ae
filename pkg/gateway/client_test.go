package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAuthenticateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "s12345", r.PostFormValue("username"))
		assert.Equal(t, "hunter2", r.PostFormValue("password"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"name":"Sam Zhang"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	result, err := client.Authenticate(context.Background(), "s12345", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, result.Code)
	assert.Equal(t, "Sam Zhang", result.Name)
}

func TestClientAuthenticateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":1,"name":""}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	result, err := client.Authenticate(context.Background(), "s12345", "wrong")
	require.NoError(t, err)
	assert.NotEqual(t, StatusOK, result.Code)
}

func TestClientAuthenticateGatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.Authenticate(context.Background(), "s12345", "hunter2")
	require.Error(t, err)
}
