package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/resume/model"
)

func readPart(t *testing.T, docx []byte, name string) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	require.NoError(t, err)
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("expected docx to contain %s", name)
	return ""
}

func TestEncodeDOCXProducesValidPackage(t *testing.T) {
	docx, err := EncodeDOCX(Render(janeSmith()))
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	require.NoError(t, err)
	var names []string
	for _, file := range reader.File {
		names = append(names, file.Name)
		assert.True(t, file.Modified.Equal(zipModTime), "entry %s has unstable timestamp", file.Name)
	}
	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
		"word/_rels/document.xml.rels",
	}, names)

	for _, name := range names {
		var node struct {
			XMLName xml.Name
		}
		require.NoError(t, xml.Unmarshal([]byte(readPart(t, docx, name)), &node), "part %s", name)
	}

	documentXML := readPart(t, docx, "word/document.xml")
	var root struct {
		XMLName xml.Name
	}
	require.NoError(t, xml.Unmarshal([]byte(documentXML), &root))
	assert.Equal(t, "document", root.XMLName.Local)
	assert.Equal(t, wmlNamespace, root.XMLName.Space)
}

func TestEncodeDOCXKeepsContentOrder(t *testing.T) {
	docx, err := EncodeDOCX(Render(janeSmith()))
	require.NoError(t, err)
	documentXML := readPart(t, docx, "word/document.xml")

	ordered := []string{
		"JANE SMITH",
		"jane@x.com | 0400000000 | Sydney",
		"Professional Summary",
		"Key Skills",
		"Work Experience",
		"Led migration",
		"Mentored 3 engineers",
		"Education",
		"Technical Skills",
		"SQL",
	}
	last := -1
	for _, text := range ordered {
		idx := strings.Index(documentXML, text)
		require.GreaterOrEqual(t, idx, 0, "missing %q", text)
		assert.Greater(t, idx, last, "%q out of order", text)
		last = idx
	}
	assert.NotContains(t, documentXML, "Certifications")
	assert.NotContains(t, documentXML, "Awards")
}

func TestEncodeDOCXFormatting(t *testing.T) {
	docx, err := EncodeDOCX(Render(janeSmith()))
	require.NoError(t, err)
	documentXML := readPart(t, docx, "word/document.xml")

	assert.Contains(t, documentXML, `<w:pStyle w:val="Heading1"></w:pStyle>`)
	assert.Contains(t, documentXML, `<w:pStyle w:val="Heading2"></w:pStyle>`)
	assert.Contains(t, documentXML, `<w:pStyle w:val="ListBullet"></w:pStyle>`)
	assert.Contains(t, documentXML, `<w:numId w:val="1"></w:numId>`)
	assert.Contains(t, documentXML, `<w:sz w:val="44"></w:sz>`)
	assert.Contains(t, documentXML, `<w:jc w:val="center"></w:jc>`)
	assert.Contains(t, documentXML, `w:ascii="Calibri"`)

	styles := readPart(t, docx, "word/styles.xml")
	assert.Contains(t, styles, `w:styleId="ListBullet"`)
	assert.Contains(t, styles, `<w:sz w:val="22"/>`)
}

func TestEncodeDOCXEscapesText(t *testing.T) {
	record := janeSmith()
	record.TechnicalSkills = []string{"C++ & <Go>"}

	docx, err := EncodeDOCX(Render(record))
	require.NoError(t, err)
	assert.Contains(t, readPart(t, docx, "word/document.xml"), "C++ &amp; &lt;Go&gt;")
}

func TestEncodeDOCXRejectsUnknownBlockKind(t *testing.T) {
	_, err := EncodeDOCX(RenderedDocument{Blocks: []Block{{Section: "x", Kind: "table", Text: "?"}}})

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, StageEncode, renderErr.Stage)
	assert.Equal(t, FaultFormat, renderErr.Kind)
}

func TestValidateDocumentXMLStructure(t *testing.T) {
	const open = `<w:document xmlns:w="` + wmlNamespace + `"><w:body>`
	const closing = `</w:body></w:document>`

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "well formed", body: `<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>ok</w:t></w:r></w:p>`},
		{name: "nested paragraph", body: `<w:p><w:p></w:p></w:p>`, wantErr: "nested <w:p>"},
		{name: "run properties after text", body: `<w:p><w:r><w:t>x</w:t><w:rPr/></w:r></w:p>`, wantErr: "<w:rPr> after <w:t>"},
		{name: "unbalanced tags", body: `<w:p><w:r></w:p>`, wantErr: "parse failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDocumentXMLStructure([]byte(open + tt.body + closing))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderToFileWritesDocument(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "jane.docx")

	written, err := RenderToFile(janeSmith(), target)
	require.NoError(t, err)
	assert.Equal(t, target, written)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	expected, err := EncodeDOCX(Render(janeSmith()))
	require.NoError(t, err)
	assert.Equal(t, expected, content)

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "jane.docx", entries[0].Name())
}

func TestRenderToFileOverwritesExisting(t *testing.T) {
	target := filepath.Join(t.TempDir(), "jane.docx")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o644))

	_, err := RenderToFile(janeSmith(), target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("stale"), content)
}

func TestRenderToFileInvalidRecordCreatesNothing(t *testing.T) {
	target := filepath.Join(t.TempDir(), "bad.docx")
	record := janeSmith()
	record.Contact.Email = model.Some("not-an-email")

	_, err := RenderToFile(record, target)

	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "contact.email", vErr.Field)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileEmptyPath(t *testing.T) {
	_, err := WriteFile(Render(janeSmith()), "")

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, StageTarget, renderErr.Stage)
	assert.Equal(t, FaultTarget, renderErr.Kind)
	assert.ErrorIs(t, err, errEmptyPath)
}

func TestWriteFileTargetIsDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.Mkdir(target, 0o755))

	_, err := WriteFile(Render(janeSmith()), target)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, StageTarget, renderErr.Stage)
}

// failingTemp accepts half of the payload and then reports a full disk.
type failingTemp struct {
	*os.File
}

func (f *failingTemp) Write(p []byte) (int, error) {
	n, _ := f.File.Write(p[:len(p)/2])
	return n, errors.New("no space left on device")
}

func TestWriteFileMidWriteFailureLeavesNothing(t *testing.T) {
	original := createTemp
	t.Cleanup(func() { createTemp = original })
	createTemp = func(dir, pattern string) (tempFile, error) {
		f, err := os.CreateTemp(dir, pattern)
		if err != nil {
			return nil, err
		}
		return &failingTemp{File: f}, nil
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "jane.docx")
	_, err := WriteFile(Render(janeSmith()), target)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, StageWrite, renderErr.Stage)
	assert.Equal(t, FaultTarget, renderErr.Kind)
	assert.Equal(t, target, renderErr.Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileCommitFailureRemovesTemp(t *testing.T) {
	original := rename
	t.Cleanup(func() { rename = original })
	rename = func(oldpath, newpath string) error { return errors.New("cross-device link") }

	dir := t.TempDir()
	_, err := WriteFile(Render(janeSmith()), filepath.Join(dir, "jane.docx"))

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, StageCommit, renderErr.Stage)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderToFileConcurrent(t *testing.T) {
	dir := t.TempDir()
	expected, err := EncodeDOCX(Render(janeSmith()))
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = RenderToFile(janeSmith(), filepath.Join(dir, "resume-"+string(rune('a'+i))+".docx"))
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		content, err := os.ReadFile(filepath.Join(dir, "resume-"+string(rune('a'+i))+".docx"))
		require.NoError(t, err)
		assert.Equal(t, expected, content)
	}
}
