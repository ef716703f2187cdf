package seoulapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string, pageSize int) *client {
	cfg := &config.SeoulAPIConfig{
		APIKey:         "test_key",
		BaseURL:        baseURL,
		PageSize:       pageSize,
		PageDelay:      time.Millisecond,
		RequestTimeout: 5 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func pageBody(total int, rows ...string) string {
	return fmt.Sprintf(`{"GetParkInfo":{"list_total_count":%d,"RESULT":{"CODE":"INFO-000","MESSAGE":"정상 처리되었습니다"},"row":[%s]}}`,
		total, strings.Join(rows, ","))
}

func TestClient_FetchAll(t *testing.T) {
	t.Run("pages through all rows", func(t *testing.T) {
		var requests []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests = append(requests, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/test_key/json/GetParkInfo/1/2/":
				fmt.Fprint(w, pageBody(3,
					`{"PKLT_CD":"1010089","PKLT_NM":"세종로 공영주차장","ADDR":"종로구 세종로 80-1","LAT":37.5725,"LOT":126.9769,"TPKCT":1260,"PRK_CRG":430,"PRK_HM":5,"CHGD_FREE_NM":"유료","TELNO":""}`,
					`{"PKLT_CD":"1033754","PKLT_NM":"종묘 공영주차장","LAT":"37.5709","LOT":"126.9941","PRK_CRG":"0"}`,
				))
			case "/test_key/json/GetParkInfo/3/3/":
				fmt.Fprint(w, pageBody(3,
					`{"PKLT_CD":"1012254","PKLT_NM":"좌표없음","LAT":0,"LOT":0,"PRK_CRG":""}`,
				))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		lots, err := newTestClient(server.URL, 2).FetchAll(context.Background())
		require.NoError(t, err)
		require.Len(t, lots, 3)
		assert.Equal(t, []string{"/test_key/json/GetParkInfo/1/2/", "/test_key/json/GetParkInfo/3/3/"}, requests)

		first := lots[0]
		assert.Equal(t, "1010089", first.Code)
		require.NotNil(t, first.Location())
		assert.Equal(t, 37.5725, first.Location().Lat)
		assert.True(t, first.Geocoded)
		assert.Equal(t, 430.0, *first.BaseFee)
		assert.Nil(t, first.Phone, "empty strings become NULL")
		require.NotNil(t, first.RawData)
		assert.Contains(t, *first.RawData, `"PKLT_CD":"1010089"`)

		second := lots[1]
		require.NotNil(t, second.Location(), "string coordinates are parsed")
		require.NotNil(t, second.BaseFee)
		assert.Equal(t, 0.0, *second.BaseFee)

		third := lots[2]
		assert.Nil(t, third.Location(), "zero coordinates mean missing")
		assert.False(t, third.Geocoded)
		assert.Nil(t, third.BaseFee)
	})

	t.Run("api level error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"RESULT":{"CODE":"INFO-100","MESSAGE":"인증키가 유효하지 않습니다."}}`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, 1000).FetchAll(context.Background())
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrUpstreamError))
	})

	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, 1000).FetchAll(context.Background())
		assert.True(t, stderrors.Is(err, errors.ErrUpstreamError))
	})

	t.Run("missing api key", func(t *testing.T) {
		c := newTestClient("http://localhost", 1000)
		c.apiKey = ""
		_, err := c.FetchAll(context.Background())
		assert.True(t, stderrors.Is(err, errors.ErrUpstreamError))
	})

	t.Run("cancelled between pages", func(t *testing.T) {
		var calls atomic.Int32
		ctx, cancel := context.WithCancel(context.Background())
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			cancel()
			fmt.Fprint(w, pageBody(5, `{"PKLT_CD":"1","PKLT_NM":"a"}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 1)
		c.pageDelay = time.Second
		_, err := c.FetchAll(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestFlexFloat(t *testing.T) {
	tests := []struct {
		in       string
		expected *float64
	}{
		{`12.5`, ptr(12.5)},
		{`"12.5"`, ptr(12.5)},
		{`" 7 "`, ptr(7)},
		{`""`, nil},
		{`null`, nil},
		{`"없음"`, nil},
	}

	for _, tt := range tests {
		var f flexFloat
		require.NoError(t, f.UnmarshalJSON([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.expected, f.Value, tt.in)
	}
}

func ptr(v float64) *float64 { return &v }
