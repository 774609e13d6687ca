package models

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	e "github.com/talky-chat/talky-api/errors"
)

const (
	// AvatarMaxDimension is the maximum width or height of a stored avatar
	AvatarMaxDimension int = 512

	// MaxFileSize is the maximum size (in bytes) of an uploaded avatar
	MaxFileSize int64 = 5242880 * 2 // 10MB

	// ImageJpegMimeType is the mime type for JPG images
	ImageJpegMimeType string = "image/jpeg"
)

// Uploader is the object storage contract for avatar blobs. It is satisfied
// by S3Store and by test doubles.
type Uploader interface {
	// Upload persists the blob and returns its publicly resolvable URL. The
	// key is namespaced by owner and a uniqueness token, so a re-upload for
	// the same owner always yields a new URL (cache busting by URL change).
	Upload(
		ctx context.Context,
		ownerID string,
		content []byte,
		mimeType string,
	) (
		string,
		int,
		error,
	)
}

// S3Store uploads avatars to an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store dials the object storage endpoint and returns a store bound to
// the given bucket
func NewS3Store(
	endpoint string,
	accessKey string,
	secretKey string,
	bucket string,
	secure bool,
) (
	*S3Store,
	error,
) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	return &S3Store{client: client, bucket: bucket}, nil
}

// Upload normalises the image and puts it into the bucket
func (s *S3Store) Upload(
	ctx context.Context,
	ownerID string,
	content []byte,
	mimeType string,
) (
	string,
	int,
	error,
) {
	if !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return "", http.StatusBadRequest, e.New(
			"S3Store.Upload",
			e.InvalidImage,
			fmt.Sprintf("%s is not an image mime type", mimeType),
		)
	}

	content, status, err := processAvatar(content)
	if err != nil {
		return "", status, err
	}

	key := avatarKey(ownerID)

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{ContentType: ImageJpegMimeType},
	)
	if err != nil {
		glog.Errorf("s.client.PutObject(`%s`) %+v", key, err)
		return "", http.StatusInternalServerError, e.New(
			"S3Store.Upload",
			e.UploadFailed,
			"could not store the uploaded image",
		)
	}

	return objectURL(s.client.EndpointURL(), s.bucket, key), http.StatusOK, nil
}

// avatarKey builds the storage key for an avatar. The millisecond suffix
// keeps concurrent uploads for one owner from colliding.
func avatarKey(ownerID string) string {
	return fmt.Sprintf("profile_pics/%s-%d.jpg", ownerID, time.Now().UnixMilli())
}

func objectURL(endpoint *url.URL, bucket string, key string) string {
	return fmt.Sprintf("%s/%s/%s", endpoint, bucket, key)
}

// processAvatar decodes the uploaded image, fits it within
// AvatarMaxDimension whilst preserving the aspect ratio, and re-encodes it
// as JPEG. Everything stored is a JPEG regardless of what was uploaded.
func processAvatar(content []byte) ([]byte, int, error) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		glog.Warningf("image.Decode(bytes.NewReader(content)) %+v", err)
		return nil, http.StatusBadRequest, e.New(
			"processAvatar",
			e.InvalidImage,
			"the uploaded file is not a decodable image",
		)
	}

	bounds := img.Bounds()
	if bounds.Dx() > AvatarMaxDimension || bounds.Dy() > AvatarMaxDimension {
		img = imaging.Fit(
			img,
			AvatarMaxDimension,
			AvatarMaxDimension,
			imaging.Lanczos,
		)
	}

	var buf bytes.Buffer
	err = jpeg.Encode(&buf, img, nil)
	if err != nil {
		glog.Errorf("jpeg.Encode(&buf, img, nil) %+v", err)
		return nil, http.StatusInternalServerError,
			fmt.Errorf("could not encode image")
	}

	return buf.Bytes(), http.StatusOK, nil
}
