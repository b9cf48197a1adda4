package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docprox/internal/normalize"
)

const altoPage = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
  <Description>
    <sourceImageInformation>
      <fileName>0001.tif</fileName>
    </sourceImageInformation>
  </Description>
  <Layout>
    <Page ID="P1">
      <PrintSpace>
        <TextBlock ID="B1">
          <TextLine>
            <String CONTENT="Great" HPOS="10" VPOS="20" WIDTH="30" HEIGHT="5"/>
            <SP/>
            <String CONTENT="Fire"/>
            <String CONTENT=""/>
          </TextLine>
        </TextBlock>
      </PrintSpace>
    </Page>
  </Layout>
</alto>`

func TestALTOParser_Words(t *testing.T) {
	p := &ALTOParser{Strategy: normalize.Lowercase}
	doc, err := p.Parse(strings.NewReader(altoPage), "issue/0001.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Len() != 3 {
		t.Fatalf("expected 3 words, got %d", doc.Len())
	}
	if doc.Words[1].Canonical != "fire" {
		t.Errorf("expected fire, got %q", doc.Words[1].Canonical)
	}
	if doc.Words[1].Box != nil {
		t.Error("String without geometry must have no box")
	}
	if !doc.Words[2].Absent {
		t.Error("String with empty CONTENT must be absent")
	}
	box := doc.Words[0].Box
	if box == nil || box.X1 != 10 || box.Y1 != 20 || box.X2 != 40 || box.Y2 != 25 {
		t.Errorf("unexpected box %+v", box)
	}
	if doc.Meta.Title != "0001.tif" {
		t.Errorf("expected title from fileName, got %q", doc.Meta.Title)
	}
	if doc.Meta.PageCount != "1" {
		t.Errorf("expected page count 1, got %q", doc.Meta.PageCount)
	}
}

func TestALTOParser_MissingLayout(t *testing.T) {
	p := &ALTOParser{}
	_, err := p.Parse(strings.NewReader(`<alto><Description/></alto>`), "x.xml")
	if !IsSchemaError(err) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestALTOParser_MalformedGeometry(t *testing.T) {
	input := strings.Replace(altoPage, `HPOS="10"`, `HPOS="ten"`, 1)
	p := &ALTOParser{}
	_, err := p.Parse(strings.NewReader(input), "x.xml")
	if !IsSchemaError(err) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestALTOParser_TitleFallsBackToID(t *testing.T) {
	p := &ALTOParser{}
	doc, err := p.Parse(strings.NewReader(`<alto><Layout><Page/></Layout></alto>`), "pages/0042.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.Title != "0042" {
		t.Errorf("expected title 0042, got %q", doc.Meta.Title)
	}
	if doc.Len() != 0 {
		t.Errorf("expected no words, got %d", doc.Len())
	}
}
