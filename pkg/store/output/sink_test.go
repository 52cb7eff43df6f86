package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDirectory_Store(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink, err := NewDirectory(dir)
	require.NoError(t, err)

	location, err := sink.Store(context.Background(), "report.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDirectory_Store_RejectsPaths(t *testing.T) {
	sink, err := NewDirectory(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.pdf", "nested/report.pdf"} {
		_, err := sink.Store(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestNewDirectory_RequiresPath(t *testing.T) {
	_, err := NewDirectory("")
	assert.Error(t, err)
}

type mockPutObject struct {
	mock.Mock
}

func (m *mockPutObject) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestBucket_Store(t *testing.T) {
	client := new(mockPutObject)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "reports" &&
			aws.ToString(in.Key) == "eagleeye/report.pdf" &&
			aws.ToString(in.ContentType) == "application/pdf" &&
			aws.ToInt64(in.ContentLength) == 3
	})).Return(&s3.PutObjectOutput{}, nil)

	bucket, err := NewBucket(client, "reports", "eagleeye")
	require.NoError(t, err)

	location, err := bucket.Store(context.Background(), "report.pdf", []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/eagleeye/report.pdf", location)
	client.AssertExpectations(t)
}

func TestBucket_Store_Error(t *testing.T) {
	client := new(mockPutObject)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	bucket, err := NewBucket(client, "reports", "")
	require.NoError(t, err)

	_, err = bucket.Store(context.Background(), "report.pdf", []byte("pdf"))
	assert.ErrorContains(t, err, "access denied")
}

func TestNewBucket_RequiresName(t *testing.T) {
	_, err := NewBucket(new(mockPutObject), "", "")
	assert.Error(t, err)
}
