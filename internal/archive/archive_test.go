package archive

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPut struct {
	path        string
	contentType string
	body        string
}

// fakeS3 answers PutObject requests and records what was sent.
type fakeS3 struct {
	mu     sync.Mutex
	puts   []recordedPut
	status int
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	if req.Method == http.MethodPut && status == http.StatusOK {
		body, _ := io.ReadAll(req.Body)
		f.puts = append(f.puts, recordedPut{
			path:        req.URL.Path,
			contentType: req.Header.Get("Content-Type"),
			body:        string(body),
		})
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     http.Header{"ETag": {`"etag"`}},
		Request:    req,
	}, nil
}

func newTestS3Sink(t *testing.T, rt http.RoundTripper, cfg S3Config) *S3Sink {
	t.Helper()
	cfg.AccessKeyID = "AKIA"
	cfg.SecretAccessKey = "SECRET"
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://mock.s3.local"
	}
	sink, err := NewS3Sink(context.Background(), cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.RetryMaxAttempts = 1
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	require.NoError(t, err)
	return sink
}

func TestS3Sink_Put(t *testing.T) {
	rt := &fakeS3{}
	sink := newTestS3Sink(t, rt, S3Config{Bucket: "exports", Prefix: "vault", PathStyle: true})

	loc, err := sink.Put(context.Background(), "dir/promptvault_all_2024-01-01.json", "application/json", []byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/vault/promptvault_all_2024-01-01.json", loc)

	require.Len(t, rt.puts, 1)
	put := rt.puts[0]
	assert.Equal(t, "/exports/vault/promptvault_all_2024-01-01.json", put.path)
	assert.Equal(t, "application/json", put.contentType)
	assert.Contains(t, put.body, `{"ok":true}`)
}

func TestS3Sink_PutError(t *testing.T) {
	rt := &fakeS3{status: http.StatusForbidden}
	sink := newTestS3Sink(t, rt, S3Config{Bucket: "exports", PathStyle: true})

	_, err := sink.Put(context.Background(), "a.csv", "text/csv", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload a.csv")
}

func TestS3Sink_EmptyName(t *testing.T) {
	sink := newTestS3Sink(t, &fakeS3{}, S3Config{Bucket: "b", PathStyle: true})
	_, err := sink.Put(context.Background(), "", "", nil)
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	require.Error(t, err)
}

func TestNewS3Sink_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Sink(context.Background(), S3Config{Bucket: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load aws config")
}

func TestFSSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewFSSink(dir)

	loc, err := sink.Put(context.Background(), "../escape/out.csv", "text/csv", []byte("a,b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.csv"), loc)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(got))

	_, err = sink.Put(context.Background(), "", "", nil)
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestOpen_SelectsSink(t *testing.T) {
	s, err := Open(context.Background(), Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FSSink{}, s)

	s, err = Open(context.Background(), Options{S3: S3Config{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}})
	require.NoError(t, err)
	assert.IsType(t, &S3Sink{}, s)
}
