package docx

import "encoding/xml"

// documentXML mirrors the subset of word/document.xml needed for table
// extraction. Word namespaces are ignored; local element names are unique
// enough within a document body.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

type bodyXML struct {
	Tables []tableXML `xml:"tbl"`
}

type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Properties tableCellPropsXML `xml:"tcPr"`
	Paragraphs []paragraphXML    `xml:"p"`
}

type tableCellPropsXML struct {
	GridSpan gridSpanXML `xml:"gridSpan"`
	VMerge   vMergeXML   `xml:"vMerge"`
}

type gridSpanXML struct {
	Val string `xml:"val,attr"`
}

type vMergeXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text []textXML `xml:"t"`
}

type textXML struct {
	Value string `xml:",chardata"`
}
