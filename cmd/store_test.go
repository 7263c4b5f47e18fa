package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"fitctl/pkg/cache"
	"fitctl/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCourseList = `<html><body><main><table id="list"><tbody>
<tr><td><a href="/study/course/FCE/.cs">Fyzika v elektrotechnice</a></td><td>FCE</td><td>Z</td><td>5</td><td>ZáZk</td><td>UFYZ</td></tr>
<tr><td><a href="/study/course/VYF/.cs">Výpočetní fotografie</a></td><td>VYF</td><td>L</td><td>6</td><td>Zk</td><td>UPGM</td></tr>
</tbody></table></main></body></html>`

const testCourseDetail = `<html><body><main>
<div><div><p>Garant</p></div><div><div>doc. Ing. Petr Novák, Ph.D.</div></div></div>
<div><div><p>Rozsah</p></div><div><div>26 hod. přednášky, 13 hod. projekty</div></div></div>
<div><div><p>Bodové hodnocení</p></div><div><div>60 b. zkouška, 40 b. projekty</div></div></div>
</main></body></html>`

const testProgram = `<html><body><main><div class="table-responsive__holder"><table><tbody>
<tr><td><a href="/study/field/1/.cs">Počítačová grafika a interakce</a></td><td>NVIZ</td></tr>
</tbody></table></div></main></body></html>`

// stubSpinner runs the action in place of the terminal spinner
func stubSpinner(t *testing.T, run func(ctx context.Context, title string, action func()) error) {
	t.Helper()
	original := runSpinner
	runSpinner = run
	t.Cleanup(func() { runSpinner = original })
}

func inlineSpinner(_ context.Context, _ string, action func()) error {
	action()
	return nil
}

func newFacultyServer(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/study/courses/.cs":      testCourseList,
		"/study/course/FCE/.cs":   testCourseDetail,
		"/study/course/VYF/.cs":   testCourseDetail,
		"/study/program/7887/.cs": testProgram,
		"/study/field/1/.cs":      "<html><body><main></main></body></html>",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWithSpinner(t *testing.T) {
	failing := errors.New("no terminal")
	fetchErr := errors.New("listing gone")

	t.Run("spinner error", func(t *testing.T) {
		stubSpinner(t, func(context.Context, string, func()) error { return failing })
		err := withSpinner(context.Background(), "", func() error { return nil })
		assert.ErrorIs(t, err, failing)
	})

	t.Run("stopped before the action finished", func(t *testing.T) {
		stubSpinner(t, func(context.Context, string, func()) error { return nil })
		err := withSpinner(context.Background(), "", func() error { return nil })
		assert.ErrorIs(t, err, errInterrupted)
	})

	t.Run("cancelled", func(t *testing.T) {
		stubSpinner(t, func(context.Context, string, func()) error { return nil })
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := withSpinner(ctx, "", func() error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("action error", func(t *testing.T) {
		stubSpinner(t, inlineSpinner)
		err := withSpinner(context.Background(), "", func() error { return fetchErr })
		assert.ErrorIs(t, err, fetchErr)
	})
}

func TestLoadStore_Cancelled(t *testing.T) {
	stubSpinner(t, inlineSpinner)
	dir := t.TempDir()
	cfg := &config.AppConfig{CacheDir: dir, BaseURL: "http://127.0.0.1:1"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store, err := loadStore(ctx, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, store)

	assert.False(t, cache.Exists(filepath.Join(dir, "courses.json")))
	assert.False(t, cache.Exists(filepath.Join(dir, "specializations.json")))
}

func TestLoadStore_FetchesThenCaches(t *testing.T) {
	stubSpinner(t, inlineSpinner)
	server := newFacultyServer(t)
	dir := t.TempDir()
	cfg := &config.AppConfig{CacheDir: dir, BaseURL: server.URL}

	store, err := loadStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"FCE", "VYF"}, store.CourseKeys())
	assert.Equal(t, []string{"NVIZ"}, store.SpecializationKeys())

	fce, err := store.Course("FCE")
	require.NoError(t, err)
	assert.Equal(t, "doc. Ing. Petr Novák, Ph.D.", fce.Garant)

	assert.True(t, cache.Exists(filepath.Join(dir, "courses.json")))
	assert.True(t, cache.Exists(filepath.Join(dir, "specializations.json")))

	// Served from the snapshots once the site is gone, without the spinner
	server.Close()
	stubSpinner(t, func(context.Context, string, func()) error {
		t.Fatalf("spinner shown although snapshots exist")
		return nil
	})

	cached, err := loadStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, store.CourseKeys(), cached.CourseKeys())
	assert.Equal(t, []string{"NVIZ"}, cached.SpecializationKeys())
}
