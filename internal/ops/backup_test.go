package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}

	files := map[string]string{
		"subjects.json":    `[{"id":"sub_a1","name":"Math","color":"#B58463"}]`,
		"assignments.json": `[{"id":"asg_b2","subject":"Math","name":"Problem set 1","dueDate":"2026-04-01","status":"Ongoing"}]`,
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(src, rel), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	// Leftover from an interrupted atomic save; must not be archived.
	if err := os.WriteFile(filepath.Join(src, "assignments.json.tmp"), []byte("partial"), 0o644); err != nil {
		t.Fatalf("write tmp: %v", err)
	}

	archive := filepath.Join(t.TempDir(), "snapshot.tar.gz")
	if err := Snapshot(src, archive); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	restoreDir := filepath.Join(t.TempDir(), "restore")
	if err := Restore(archive, restoreDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	got := map[string]string{}
	err := filepath.WalkDir(restoreDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(restoreDir, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk restore dir: %v", err)
	}

	if !reflect.DeepEqual(files, got) {
		t.Fatalf("restored files mismatch:\nwant=%v\ngot=%v", files, got)
	}

	rep, err := Verify(restoreDir)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if rep.Subjects != 1 || rep.Assignments != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestVerify_MissingFilesAreEmpty(t *testing.T) {
	rep, err := Verify(t.TempDir())
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if rep.Subjects != 0 || rep.Assignments != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestVerify_RejectsMalformedCollection(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "assignments.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Verify(dir); err == nil {
		t.Fatalf("expected verify to reject malformed collection")
	}
}

func TestRestore_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len("bad")),
	}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if _, err := tw.Write([]byte("bad")); err != nil {
		t.Fatalf("write body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if err := Restore(archive, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatalf("expected restore to reject path traversal archive")
	}
}
