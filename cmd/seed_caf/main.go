// seed_caf genera archivos CAF XML de demostración (codificados ISO-8859-1,
// como los reales del SII) para probar manualmente el flujo de carga de la
// consola sin un CAF verdadero a mano.
//
// Uso: go run ./cmd/seed_caf [directorio-salida]
// Por defecto escribe en ./testdata-caf. Genera un archivo por tipo de
// documento del catálogo, con rangos y fechas deterministas.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/facturasur/caf-console/pkg/sii"
)

const cafTemplate = `<?xml version="1.0" encoding="ISO-8859-1"?>
<AUTORIZACION>
  <CAF version="1.0">
    <DA>
      <RE>%s</RE>
      <RS>%s</RS>
      <TD>%d</TD>
      <RNG>
        <D>%d</D>
        <H>%d</H>
      </RNG>
      <FA>%s</FA>
      <RSAPK>
        <M>demo-modulus</M>
        <E>Aw==</E>
      </RSAPK>
      <IDK>100</IDK>
    </DA>
    <FRMA algoritmo="SHA1withRSA">demo-firma</FRMA>
  </CAF>
  <RSASK>demo-llave-privada</RSASK>
</AUTORIZACION>
`

var demoDocTypes = []uint{33, 34, 39, 41, 52, 56, 61}

func main() {
	outDir := "testdata-caf"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}

	issued := time.Now().Format("2006-01-02")
	for i, td := range demoDocTypes {
		initial := int64(i*1000 + 1)
		final := initial + 999
		content := fmt.Sprintf(cafTemplate,
			"11111111-1", "Empresa Demo S.A.", td, initial, final, issued)

		// Los CAF reales van en ISO-8859-1; codificamos igual para que la
		// prueba ejercite el CharsetReader del parser.
		encoded, _, err := transform.String(charmap.ISO8859_1.NewEncoder(), content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Codificar ISO-8859-1: %v\n", err)
			os.Exit(1)
		}

		name := filepath.Join(outDir, fmt.Sprintf("caf_td%d.xml", td))
		if err := os.WriteFile(name, []byte(encoded), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("%-24s %s folios %d-%d\n", name, sii.DocumentTypeName(td), initial, final)
	}
}
