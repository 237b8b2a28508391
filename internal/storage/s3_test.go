package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type putCall struct {
	input *s3.PutObjectInput
	body  string
}

type fakeS3 struct {
	puts []putCall
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, putCall{input: params, body: string(b)})
	return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), "games/2024/03/14/games.json"},
		{time.Date(2023, 12, 1, 23, 59, 0, 0, time.UTC), "games/2023/12/01/games.json"},
		{time.Date(2025, 1, 9, 5, 0, 0, 0, time.UTC), "games/2025/01/09/games.json"},
	}
	for _, tt := range tests {
		if got := ObjectKey(tt.date); got != tt.want {
			t.Errorf("ObjectKey(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestParseObjectKey(t *testing.T) {
	d, ok := ParseObjectKey("games/2024/03/14/games.json")
	if !ok {
		t.Fatal("expected canonical key to parse")
	}
	if !d.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %s", d)
	}

	for _, key := range []string{
		"games/2024/3/14/games.json",
		"games/2024/03/14/other.json",
		"exports/2024/03/14/games.json",
		"games/2024/13/01/games.json",
		"games/games.json",
	} {
		if _, ok := ParseObjectKey(key); ok {
			t.Errorf("expected %q to be rejected", key)
		}
	}
}

func TestDayPrefix(t *testing.T) {
	got := DayPrefix(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC))
	if got != "games/2024/03/14/" {
		t.Fatalf("unexpected prefix %s", got)
	}
}

func TestPutGamesWritesIndentedJSON(t *testing.T) {
	fake := &fakeS3{}
	store := NewGamesStore(fake, "games-bucket", nil)
	store.now = func() time.Time { return time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC) }

	date := time.Date(2024, 3, 14, 6, 0, 0, 0, time.UTC)
	key, err := store.PutGames(context.Background(), []byte(`{"data":[{"id":1}]}`), date)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if key != "games/2024/03/14/games.json" {
		t.Fatalf("unexpected key %s", key)
	}
	if len(fake.puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(fake.puts))
	}

	call := fake.puts[0]
	if aws.ToString(call.input.Bucket) != "games-bucket" || aws.ToString(call.input.Key) != key {
		t.Fatalf("unexpected target %s/%s", aws.ToString(call.input.Bucket), aws.ToString(call.input.Key))
	}
	if aws.ToString(call.input.ContentType) != "application/json" {
		t.Fatalf("unexpected content type %s", aws.ToString(call.input.ContentType))
	}
	want := "{\n  \"data\": [\n    {\n      \"id\": 1\n    }\n  ]\n}"
	if call.body != want {
		t.Fatalf("unexpected body:\n%s", call.body)
	}
	if call.input.Metadata["games-date"] != "2024-03-14" {
		t.Fatalf("unexpected metadata %v", call.input.Metadata)
	}
	if call.input.IfNoneMatch != nil || call.input.IfMatch != nil {
		t.Fatal("expected unconditional put")
	}
}

func TestPutGamesPropagatesError(t *testing.T) {
	putErr := errors.New("AccessDenied")
	store := NewGamesStore(&fakeS3{err: putErr}, "games-bucket", nil)

	_, err := store.PutGames(context.Background(), []byte(`{"data":[]}`), time.Now())
	if !errors.Is(err, putErr) {
		t.Fatalf("expected put error in chain, got %v", err)
	}
}

func TestPutGamesRejectsInvalidJSON(t *testing.T) {
	fake := &fakeS3{}
	store := NewGamesStore(fake, "games-bucket", nil)

	if _, err := store.PutGames(context.Background(), []byte(`not json`), time.Now()); err == nil {
		t.Fatal("expected error for invalid json")
	}
	if len(fake.puts) != 0 {
		t.Fatal("expected no write")
	}
}
