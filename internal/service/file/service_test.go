package file

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileService(t *testing.T) FileService {
	t.Helper()
	s, err := storage.NewLocalStorage(t.TempDir(), "/api/v1/files")
	require.NoError(t, err)
	return NewFileService(s)
}

func TestFileService_StoreDocument(t *testing.T) {
	ctx := context.Background()
	svc := newFileService(t)

	stored, err := svc.StoreDocument(ctx, "emp-1", "Offer Letter", strings.NewReader("%PDF"), "offer.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Key, "documents/emp-1/offer-letter-"), stored.Key)
	assert.True(t, strings.HasSuffix(stored.Key, ".pdf"), stored.Key)
	assert.Equal(t, "/api/v1/files/"+stored.Key, stored.URL)

	rc, err := svc.OpenDocument(ctx, stored.Key)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF", string(body))

	require.NoError(t, svc.DeleteFile(ctx, stored.Key))
	_, err = svc.OpenDocument(ctx, stored.Key)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)
}

func TestFileService_StoreDocument_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newFileService(t)

	_, err := svc.StoreDocument(ctx, "emp-1", "script", strings.NewReader("x"), "run.sh")
	assert.ErrorIs(t, err, document.ErrUnsupportedFileType)

	big := bytes.NewReader(make([]byte, MaxDocumentSize+1))
	_, err = svc.StoreDocument(ctx, "emp-1", "scan", big, "scan.png")
	assert.ErrorIs(t, err, document.ErrFileTooLarge)
}

func TestFileService_DocumentKeyIgnoresDirectories(t *testing.T) {
	svc := newFileService(t)
	assert.Equal(t, "documents/emp-1/passwd", svc.DocumentKey("emp-1", "../../passwd"))
}
