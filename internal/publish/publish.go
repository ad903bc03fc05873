package publish

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/miniframe/internal/errors"
)

// ErrNoBucket is returned when Options.Bucket is empty.
var ErrNoBucket = stderrors.New("publish: no bucket")

// PutObjectAPI is the part of the S3 client used by Publish.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures Publish.
type Options struct {
	// Bucket is the destination bucket. Required.
	Bucket string

	// Prefix is prepended to every key. A trailing slash is added if missing.
	Prefix string

	// CacheControl is set on every object when non-empty.
	CacheControl string

	// DryRun lists the objects without uploading them.
	DryRun bool

	// Logger receives one line per object. Default: discard.
	Logger *slog.Logger
}

// Object describes one uploaded file.
type Object struct {
	Key         string
	Path        string
	Size        int64
	ContentType string
}

// Result lists what was uploaded.
type Result struct {
	Objects []Object
	Bytes   int64
}

// Publish uploads every file below dir.
func Publish(ctx context.Context, client PutObjectAPI, dir string, opts Options) (*Result, error) {
	if opts.Bucket == "" {
		return nil, errors.New(errors.CodeMissingArgument).Wrap(ErrNoBucket).
			WithSuggestion("Pass --bucket or set publish.bucket in miniframe.json")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	objects, err := Collect(dir, opts.Prefix)
	if err != nil {
		return nil, errors.New(errors.CodeUploadFailed).Wrap(err)
	}

	res := &Result{}
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return res, errors.New(errors.CodeUploadFailed).Wrap(err)
		}
		if !opts.DryRun {
			if err := put(ctx, client, obj, opts); err != nil {
				return res, errors.New(errors.CodeUploadFailed).
					WithDetail(fmt.Sprintf("uploading %s to s3://%s/%s", obj.Path, opts.Bucket, obj.Key)).
					Wrap(err)
			}
		}
		logger.Info("published", "key", obj.Key, "size", obj.Size, "type", obj.ContentType, "dry_run", opts.DryRun)
		res.Objects = append(res.Objects, obj)
		res.Bytes += obj.Size
	}
	return res, nil
}

func put(ctx context.Context, client PutObjectAPI, obj Object, opts Options) error {
	f, err := os.Open(obj.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(opts.Bucket),
		Key:           aws.String(obj.Key),
		Body:          f,
		ContentLength: aws.Int64(obj.Size),
		ContentType:   aws.String(obj.ContentType),
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	_, err = client.PutObject(ctx, input)
	return err
}

// Collect lists the files below dir in lexical order, with their keys.
func Collect(dir, prefix string) ([]Object, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("publish: %s is not a directory", dir)
	}

	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	var objects []Object
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{
			Key:         prefix + filepath.ToSlash(rel),
			Path:        p,
			Size:        fi.Size(),
			ContentType: ContentType(p),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// ContentType returns the MIME type for a file name, defaulting to
// application/octet-stream.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".wasm":
		return "application/wasm"
	case ".js", ".mjs":
		return "text/javascript; charset=utf-8"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
