package service_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/memory"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/sqlite"
	"github.com/projetointerclasse/interclasse/pkg/cryptox"
	"github.com/projetointerclasse/interclasse/pkg/imagex"
	"github.com/stretchr/testify/require"
)

// today anchors date-of-birth checks in tests.
var today = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

func newRecords(t *testing.T) *store.Records {
	t.Helper()

	kv, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, kv.ApplyMigrations())
	t.Cleanup(func() { _ = kv.Close() })

	return store.NewRecords(kv, cryptox.PasswordHasher{Pepper: "test"})
}

func newHolder() *service.SessionHolder {
	return &service.SessionHolder{
		Session: store.Scoped(memory.New(), store.SessionPrefix("tab")),
		Durable: store.Scoped(memory.New(), store.DevicePrefix("dev")),
	}
}

func pngFile(t *testing.T, w, h int) imagex.File {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return imagex.File{
		Name:        "photo.png",
		ContentType: "image/png",
		Size:        int64(buf.Len()),
		Body:        &buf,
	}
}
