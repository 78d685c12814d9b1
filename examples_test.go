package igor

import (
	"bytes"
	"fmt"
	"log"

	"github.com/cwbudde/igor/internal/igortest"
)

func ExampleDecodeWave() {
	fixture := igortest.Wave{
		Generation:        5,
		Name:              "spectrum",
		Type:              igortest.TypeFloat32,
		Steps:             [4]float64{-0.5},
		Origins:           [4]float64{207},
		Samples:           []float64{1099, 1077, 1088},
		ExtendedDataUnits: "Counts [a.u.]",
	}

	w, err := DecodeWave(bytes.NewReader(fixture.Bytes()))
	if err != nil {
		log.Fatal(err)
	}

	axis, _ := w.AxisValues(0)
	fmt.Printf("%s %v %s\n", w.Name(), w.Dimensions(), w.DataUnits())
	fmt.Println(axis, w.Samples)
	// Output:
	// spectrum [3 0 0 0] Counts [a.u.]
	// [207 206.5 206] [1099 1077 1088]
}

func ExampleDecoder_DecodeArchive() {
	first := igortest.Wave{Generation: 5, Name: "w0", Type: igortest.TypeInt16, Samples: []float64{1, 2}}
	second := igortest.Wave{Generation: 2, Name: "w1", Type: igortest.TypeFloat64, Samples: []float64{0.5}}

	data := igortest.Concat(
		igortest.Record(igortest.RecordVariables, 0, make([]byte, 16)),
		igortest.Record(igortest.RecordWave, 0, first.Bytes()),
		igortest.Record(igortest.RecordHistory, 0, []byte("Display w0\r")),
		igortest.Record(igortest.RecordWave, 0, second.Bytes()),
	)

	dec := NewDecoder(bytes.NewReader(data))
	dec.RegisterRecordHandler(NewTextRecordHandler())

	waves, err := dec.DecodeArchive()
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range waves {
		fmt.Println(w.Name(), w.Samples)
	}

	fmt.Printf("%d records, history %q\n", len(dec.Records), dec.Texts[0].Text)
	// Output:
	// w0 [1 2]
	// w1 [0.5]
	// 4 records, history "Display w0\n"
}
