package convert

import (
	"strings"
	"testing"
)

type visit struct {
	path string
	text string
}

func collect(t *testing.T, doc string) ([]visit, error) {
	t.Helper()
	var got []visit
	err := walk(strings.NewReader(doc), func(path []string, text string) {
		got = append(got, visit{strings.Join(path, "/"), text})
	})
	return got, err
}

func TestWalk_Paths(t *testing.T) {
	doc := `<?xml version="1.0"?>
<ocs>
  <meta>
    <status>ok</status>
    <statuscode>200</statuscode>
  </meta>
  <!-- comment -->
  <data><empty></empty><blank>   </blank><x>1</x></data>
</ocs>`

	got, err := collect(t, doc)
	if err != nil {
		t.Fatalf("walk() error = %v", err)
	}
	want := []visit{
		{"ocs/meta/status", "ok"},
		{"ocs/meta/statuscode", "200"},
		{"ocs/data/x", "1"},
	}
	if len(got) != len(want) {
		t.Fatalf("visits = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWalk_MixedContent(t *testing.T) {
	got, err := collect(t, `<a> 1 <b>2</b> 3 </a>`)
	if err != nil {
		t.Fatalf("walk() error = %v", err)
	}
	want := []visit{{"a", "1"}, {"a/b", "2"}, {"a", "3"}}
	if len(got) != len(want) {
		t.Fatalf("visits = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWalk_Entities(t *testing.T) {
	got, err := collect(t, `<a>&#49;&#50;</a>`)
	if err != nil {
		t.Fatalf("walk() error = %v", err)
	}
	if len(got) != 1 || got[0].text != "12" {
		t.Errorf("visits = %+v, want one visit with text 12", got)
	}
}

func TestWalk_DeclaredCharset(t *testing.T) {
	// "é" encoded as ISO-8859-1 (0xE9).
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a><b>caf\xe9</b><c>3</c></a>"

	got, err := collect(t, doc)
	if err != nil {
		t.Fatalf("walk() error = %v", err)
	}
	if len(got) != 2 || got[0].text != "café" || got[1].text != "3" {
		t.Errorf("visits = %+v", got)
	}
}

func TestWalk_StopsAtSyntaxError(t *testing.T) {
	got, err := collect(t, `<a><b>1</b></c><d>2</d></a>`)
	if err == nil {
		t.Fatal("walk() error = nil, want syntax error")
	}
	if len(got) != 1 || got[0].path != "a/b" {
		t.Errorf("visits = %+v, want only a/b", got)
	}
	if !strings.Contains(err.Error(), "offset") {
		t.Errorf("error %q does not mention offset", err)
	}
}
