package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
)

// errNoSuchKey сигнализирует об отсутствии объекта в бакете
var errNoSuchKey = errors.New("no such key")

// ObjectAPI это подмножество методов *s3.Client, используемых хранилищем
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Options содержит настройки S3-совместимого хранилища (AWS, MinIO)
type Options struct {
	Bucket       string
	Prefix       string
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// Store реализует repository.Store поверх S3: каждый документ хранится отдельным JSON-объектом.
// В S3 нет атомарных операций над массивами, поэтому изменения выполняются как
// чтение-изменение-запись документа целиком (при гонке побеждает последняя запись).
type Store struct {
	objects *objectStore
	cards   *CardRepository
	units   *UnitRepository
}

// New создает S3-клиент по настройкам и проверяет наличие бакета
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	store := NewWithClient(client, opts.Bucket, opts.Prefix)
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// NewWithClient создает хранилище поверх готового клиента
func NewWithClient(client ObjectAPI, bucket, prefix string) *Store {
	objects := &objectStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
	return &Store{
		objects: objects,
		cards:   newCardRepository(objects),
		units:   newUnitRepository(objects),
	}
}

// Cards возвращает репозиторий карточек
func (s *Store) Cards() repository.CardRepository {
	return s.cards
}

// Units возвращает репозиторий подразделений
func (s *Store) Units() repository.UnitRepository {
	return s.units
}

// Migrate для S3 сводится к проверке бакета: схемы у объектов нет
func (s *Store) Migrate(ctx context.Context) error {
	return s.Ping(ctx)
}

// Ping проверяет, что бакет существует и доступен
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.objects.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.objects.bucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return fmt.Errorf("bucket %s does not exist", s.objects.bucket)
		}
		return fmt.Errorf("error checking bucket: %w", err)
	}
	return nil
}

// Close ничего не делает: HTTP-клиент SDK не требует освобождения
func (s *Store) Close(context.Context) error {
	return nil
}

// objectStore читает и пишет JSON-документы по ключам <prefix>/<collection>/<id>.json
type objectStore struct {
	client ObjectAPI
	bucket string
	prefix string
}

func (o *objectStore) key(collection, id string) string {
	return path.Join(o.prefix, collection, id+".json")
}

func (o *objectStore) collectionPrefix(collection string) string {
	return path.Join(o.prefix, collection) + "/"
}

func (o *objectStore) get(ctx context.Context, key string, v any) error {
	resp, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
			return errNoSuchKey
		}
		return fmt.Errorf("error loading %s from S3: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error decoding %s: %w", key, err)
	}
	return nil
}

func (o *objectStore) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", key, err)
	}

	_, err = o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("error saving %s to S3: %w", key, err)
	}
	return nil
}

func (o *objectStore) delete(ctx context.Context, key string) error {
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting %s from S3: %w", key, err)
	}
	return nil
}

// keys возвращает ключи всех объектов коллекции
func (o *objectStore) keys(ctx context.Context, collection string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(o.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(o.bucket),
		Prefix: aws.String(o.collectionPrefix(collection)),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing %s: %w", collection, err)
		}
		for _, obj := range page.Contents {
			if key := aws.ToString(obj.Key); strings.HasSuffix(key, ".json") {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}
