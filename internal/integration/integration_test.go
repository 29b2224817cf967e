// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chopper/internal/app"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func writeGzip(t *testing.T, dir, name, data string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return write(t, dir, name, buf.String())
}

// fixture writes three clusters over FASTA, FASTQ and gzip inputs.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fa := write(t, dir, "a.fa", ">r1\nACGTACGTTGCAACGGTACCAGTAGGCTAGCATCGATCGGCTAGCTAGGCATCG\n>r2\nttagccgatcgatgcatgcaaatcgatcgatgctagctagcatgc\n")
	fq := write(t, dir, "b.fq", "@q1\nGGGATCGATCGTAGCTAGCTAGCATGCATCGATCGACTG\n+\nIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIIII\n")
	gz := writeGzip(t, dir, "c.fa.gz", ">g1\nTTTTGCATGCATCGATCGATCGATGCTAGCTAGCTAGCAAAAAACCCCGGGG\n")
	solo := write(t, dir, "solo.fa", ">s\nACGTNACGTRACGTACGTACGT\n")
	data := strings.Join([]string{
		"# path\tcluster",
		fa + "\talpha",
		fq + "\tbeta",
		gz + "\talpha",
		"",
		solo,
	}, "\n") + "\n"
	return write(t, dir, "data.tsv", data)
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func sortedLines(s string) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	sort.Strings(lines)
	return lines
}

func TestCount_EndToEnd(t *testing.T) {
	data := fixture(t)
	code, out, stderr := run(t, "count", "--data-file", data, "--kmer-size", "5", "--window-size", "9", "--quiet")
	require.Equal(t, 0, code, stderr)

	lines := sortedLines(out)
	require.Len(t, lines, 3)
	ids := map[string]int{}
	for _, l := range lines {
		f := strings.Split(l, "\t")
		require.Len(t, f, 3, l)
		ids[f[2]] = len(strings.Split(f[0], ";"))
		assert.NotEqual(t, "0", f[1], l)
	}
	assert.Equal(t, 2, ids["alpha"])
	assert.Equal(t, 1, ids["beta"])
	assert.Contains(t, ids, filepath.Join(filepath.Dir(data), "solo.fa"))
}

func TestCount_IndependentOfWorkerCount(t *testing.T) {
	data := fixture(t)
	for _, scheme := range [][]string{nil, {"--disable-minimizers"}} {
		var ref []string
		for _, threads := range []string{"2", "3", "9"} {
			argv := append([]string{"count", "--data-file", data, "--threads", threads, "--kmer-size", "4", "--window-size", "8"}, scheme...)
			code, out, stderr := run(t, argv...)
			require.Equal(t, 0, code, stderr)
			got := sortedLines(out)
			if ref == nil {
				ref = got
				continue
			}
			assert.Equal(t, ref, got, "threads=%s %v", threads, scheme)
		}
	}
}

func TestCount_FailedClusterStillEmitsOthers(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, dir, "ok.fa", ">x\nACGTACGTACGGTTACGATCG\n")
	data := write(t, dir, "data.tsv", fa+"\tgood\n"+filepath.Join(dir, "gone.fa")+"\tbad\n")

	code, out, stderr := run(t, "count", "--data-file", data, "--threads", "3", "--kmer-size", "5", "--window-size", "7")
	assert.Equal(t, 3, code)
	assert.Contains(t, out, "\tgood\n")
	assert.NotContains(t, out, "\tbad")
	assert.Contains(t, stderr, "gone.fa")
}

func TestCount_ConfigFile(t *testing.T) {
	data := fixture(t)
	cfg := write(t, filepath.Dir(data), "chopper.yaml", "output: jsonl\nkmer_size: 5\nwindow_size: 9\nthreads: 2\n")
	code, out, stderr := run(t, "count", "--data-file", data, "--config", cfg, "--quiet")
	require.Equal(t, 0, code, stderr)
	for _, l := range sortedLines(out) {
		assert.True(t, strings.HasPrefix(l, `{"cluster_id":`), l)
	}
}

func TestCount_UsageErrors(t *testing.T) {
	data := fixture(t)
	code, _, stderr := run(t, "count", "--data-file", data, "--kmer-size", "9", "--window-size", "5")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "--window-size")

	code, _, _ = run(t, "count", "--data-file", data, "--bogus")
	assert.Equal(t, 2, code)

	code, _, _ = run(t, "frobnicate")
	assert.Equal(t, 2, code)
}

func TestCount_Canceled(t *testing.T) {
	data := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"count", "--data-file", data}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, 130, code)
}

func TestLayout_Newick(t *testing.T) {
	dir := t.TempDir()
	m := write(t, dir, "m.txt", "0 5 9 9\n5 0 10 10\n9 10 0 8\n9 10 8 0\n")
	names := write(t, dir, "names.txt", "w\nx\ny\nz\n")

	code, out, stderr := run(t, "layout", "--matrix", m, "--names", names)
	require.Equal(t, 0, code, stderr)
	nwk := strings.TrimSpace(out)
	assert.True(t, strings.HasSuffix(nwk, ";"))
	for _, want := range []string{"w:2", "x:3", "y:4", "z:2"} {
		assert.Contains(t, nwk, want)
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "layout")

	code, out, _ = run(t, "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "chopper version "))
}
