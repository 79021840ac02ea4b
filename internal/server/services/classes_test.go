package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/dmitrijs2005/classkeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/classes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	classID models.ClassID
	file    models.File
	err     error
}

func (f *fakePresigner) PresignUpload(_ context.Context, classID models.ClassID, file models.File) (objectstore.UploadURL, error) {
	f.classID, f.file = classID, file
	if f.err != nil {
		return objectstore.UploadURL{}, f.err
	}
	return objectstore.UploadURL{URL: "http://s3/put", Method: "PUT", Key: objectstore.ObjectKey(classID, file)}, nil
}

// countingRepo counts persistence calls that are not existence probes.
type countingRepo struct {
	classes.Repository
	saves, appends int
	failProbe      error
}

func (c *countingRepo) SaveNewClass(ctx context.Context, cl models.Class) error {
	c.saves++
	return c.Repository.SaveNewClass(ctx, cl)
}

func (c *countingRepo) AddNewFile(ctx context.Context, id models.ClassID, f models.File) error {
	c.appends++
	return c.Repository.AddNewFile(ctx, id, f)
}

func (c *countingRepo) ClassIDExists(ctx context.Context, id models.ClassID) (bool, error) {
	if c.failProbe != nil {
		return false, c.failProbe
	}
	return c.Repository.ClassIDExists(ctx, id)
}

func newService(t *testing.T) (*ClassService, *countingRepo, *fakePresigner) {
	t.Helper()
	repo := &countingRepo{Repository: classes.NewSynced(classes.NewMemoryRepository())}
	p := &fakePresigner{}
	return NewClassService(repo, p), repo, p
}

func TestClassService_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService(t)

	c, err := svc.CreateClass(ctx, "理科")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)
	assert.Len(t, string(c.PassPhrase), models.PassPhraseLength)
	assert.Empty(t, c.Files)

	got, err := svc.GetClass(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	got, err = svc.GetClassByPassPhrase(ctx, c.PassPhrase)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	list, err := svc.ListClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ClassSummary{c.Summary()}, list)

	require.NoError(t, svc.RenameClass(ctx, c.ID, "社会"))
	got, err = svc.GetClass(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "社会", got.Name)

	deleted, err := svc.DeleteClass(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.ID)

	_, err = svc.GetClass(ctx, c.ID)
	assert.ErrorIs(t, err, common.ErrClassNotFound)
}

func TestClassService_Validation(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService(t)

	_, err := svc.CreateClass(ctx, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Zero(t, repo.saves)

	assert.ErrorIs(t, svc.RenameClass(ctx, models.NewClassID(), ""), common.ErrInvalidInput)
}

func TestClassService_ProbeErrorStopsCreate(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.failProbe = common.ErrConnection

	_, err := svc.CreateClass(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrConnection)
	assert.Zero(t, repo.saves)
}

func TestClassService_Files(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService(t)
	fixed := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	c, err := svc.CreateClass(ctx, "体育")
	require.NoError(t, err)

	f, err := svc.AddFile(ctx, c.ID, "foo", "ffoo", time.Unix(1711931415, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.appends)
	assert.Equal(t, int64(1711931415), f.ResourceInfo.CreatedAt.Unix())

	g, err := svc.AddFile(ctx, c.ID, "bar", "fbar", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), g.ResourceInfo.CreatedAt.Unix())

	files, err := svc.ListFiles(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.File{f, g}, files)

	got, err := svc.GetFile(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	deleted, err := svc.DeleteFile(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f, deleted)

	_, err = svc.AddFile(ctx, models.NewClassID(), "x", "x", fixed)
	assert.ErrorIs(t, err, common.ErrClassNotFound)
}

func TestClassService_UploadURL(t *testing.T) {
	ctx := context.Background()
	svc, _, p := newService(t)

	a, err := svc.CreateClass(ctx, "a")
	require.NoError(t, err)
	b, err := svc.CreateClass(ctx, "b")
	require.NoError(t, err)
	f, err := svc.AddFile(ctx, a.ID, "m", "photo.png", time.Now())
	require.NoError(t, err)

	u, err := svc.UploadURL(ctx, a.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "PUT", u.Method)
	assert.Equal(t, a.ID, p.classID)
	assert.Equal(t, f, p.file)

	_, err = svc.UploadURL(ctx, b.ID, f.ID)
	assert.ErrorIs(t, err, common.ErrFileNotFound)

	_, err = svc.UploadURL(ctx, models.NewClassID(), f.ID)
	assert.ErrorIs(t, err, common.ErrClassNotFound)

	p.err = errors.New("s3 down")
	_, err = svc.UploadURL(ctx, a.ID, f.ID)
	assert.Error(t, err)
}

func TestClassService_UploadsDisabledByDefault(t *testing.T) {
	ctx := context.Background()
	svc := NewClassService(classes.NewSynced(classes.NewMemoryRepository()), nil)

	c, err := svc.CreateClass(ctx, "a")
	require.NoError(t, err)
	f, err := svc.AddFile(ctx, c.ID, "m", "f", time.Now())
	require.NoError(t, err)

	_, err = svc.UploadURL(ctx, c.ID, f.ID)
	assert.ErrorIs(t, err, common.ErrUploadsDisabled)
	assert.NoError(t, svc.Ping(ctx))
}
