package memory

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
)

// cafValidity vigencia que el SII otorga a un CAF desde su autorización.
const cafValidity = time.Hour * 24 * 30 * 6 // 6 meses

// cafMetadata campos extraídos del XML de autorización
// (<AUTORIZACION><CAF><DA>...). Solo metadatos de rango: las llaves RSA y la
// firma del documento son asunto del gateway remoto, aquí se ignoran.
type cafMetadata struct {
	companyCode       string
	companyName       string
	documentType      uint
	initialFolios     int64
	finalFolios       int64
	authorizationDate time.Time
}

// parseCAFDocument extrae los metadatos del XML de un CAF SII. Los archivos
// reales vienen declarados ISO-8859-1, de ahí el CharsetReader.
func parseCAFDocument(document []byte) (*cafMetadata, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(charset) {
		case "iso-8859-1", "latin1":
			return charmap.ISO8859_1.NewDecoder().Reader(input), nil
		default:
			return input, nil
		}
	}
	if err := doc.ReadFromBytes(document); err != nil {
		return nil, fmt.Errorf("xml malformado: %w", err)
	}

	da := doc.FindElement("/AUTORIZACION/CAF/DA")
	if da == nil {
		return nil, fmt.Errorf("no es un documento de autorización SII: falta AUTORIZACION/CAF/DA")
	}

	meta := &cafMetadata{
		companyCode: elementText(da, "RE"),
		companyName: elementText(da, "RS"),
	}

	td, err := strconv.ParseUint(elementText(da, "TD"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("tipo de documento TD inválido: %w", err)
	}
	meta.documentType = uint(td)

	meta.initialFolios, err = strconv.ParseInt(elementText(da, "RNG/D"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("folio inicial RNG/D inválido: %w", err)
	}
	meta.finalFolios, err = strconv.ParseInt(elementText(da, "RNG/H"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("folio final RNG/H inválido: %w", err)
	}
	if meta.finalFolios < meta.initialFolios {
		return nil, fmt.Errorf("rango de folios invertido: %d > %d", meta.initialFolios, meta.finalFolios)
	}

	meta.authorizationDate, err = time.Parse("2006-01-02", elementText(da, "FA"))
	if err != nil {
		return nil, fmt.Errorf("fecha de autorización FA inválida: %w", err)
	}

	return meta, nil
}

func elementText(parent *etree.Element, path string) string {
	if el := parent.FindElement(path); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}
