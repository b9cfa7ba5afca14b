// facemat is a small diagnostic tool around the matrix engine: it inspects,
// converts and generates serialized matrix files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/evilsocket/islazy/log"

	"github.com/mcbolto/facerec/common"
	"github.com/mcbolto/facerec/matrix"
	"github.com/mcbolto/facerec/matrix/backend"
)

var (
	backendName = flag.String("backend", "blas", "Linear algebra backend to use (blas or naive).")
	infoFile    = flag.String("info", "", "Print shape and summary statistics of a binary matrix file.")
	eigenFile   = flag.String("eigen", "", "Print the retained eigenvalues of a symmetric binary matrix file.")
	randomSpec  = flag.String("random", "", "Generate a normally distributed matrix, as 'ROWSxCOLS'.")
	toText      = flag.String("to-text", "", "Convert a binary matrix file to the text form.")
	toBin       = flag.String("to-bin", "", "Convert a text matrix file to the binary form.")
	outFile     = flag.String("out", "", "Output file, stdout if empty where it makes sense.")

	logFile  = flag.String("log-file", "", "If filled, facemat will log to this file.")
	logDebug = flag.Bool("debug", false, "Enable debug logs, including the per-operation trace.")

	cpuProfile = flag.String("cpu-profile", "", "Write CPU profile to this file.")
	memProfile = flag.String("mem-profile", "", "Write memory profile to this file.")
)

func matrixBytes(m *matrix.Matrix) uint64 {
	return uint64(m.Rows) * uint64(m.Cols) * matrix.ScalarSize
}

func doInfo(fileName string) {
	m, err := matrix.Load(fileName)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer m.Release()

	min, max := m.Data[0], m.Data[0]
	for _, v := range m.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	fmt.Printf("%s: %d x %d (%s), min %g max %g\n",
		fileName, m.Rows, m.Cols, humanize.Bytes(matrixBytes(m)), min, max)
}

func doEigen(fileName string) {
	m, err := matrix.Load(fileName)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer m.Release()

	v, d, err := matrix.Eigen(m)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer v.Release()
	defer d.Release()

	fmt.Printf("%s: %d eigenpairs retained of %d\n", fileName, d.Rows, m.Rows)
	for i := 0; i < d.Rows; i++ {
		fmt.Printf("  lambda_%d = %g\n", i, d.At(i, i))
	}
}

func doRandom(spec string) {
	var rows, cols int
	if _, err := fmt.Sscanf(spec, "%dx%d", &rows, &cols); err != nil {
		log.Fatal("invalid -random specification %q: %v", spec, err)
	}

	m := matrix.Must(matrix.RandomNormal("random", rows, cols))
	defer m.Release()

	if *outFile == "" {
		log.Fatal("-random needs -out")
	} else if err := m.Save(*outFile); err != nil {
		log.Fatal("%v", err)
	}

	log.Info("wrote %s (%s) to %s", spec, humanize.Bytes(matrixBytes(m)), *outFile)
}

func doToText(fileName string) {
	m, err := matrix.Load(fileName)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer m.Release()

	out := os.Stdout
	if *outFile != "" {
		if out, err = os.Create(*outFile); err != nil {
			log.Fatal("%v", err)
		}
		defer out.Close()
	}
	if err := m.WriteText(out); err != nil {
		log.Fatal("%v", err)
	}
}

func doToBin(fileName string) {
	f, err := os.Open(fileName)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer f.Close()

	m, err := matrix.ReadText(fileName, f)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer m.Release()

	if *outFile == "" {
		log.Fatal("-to-bin needs -out")
	} else if err := m.Save(*outFile); err != nil {
		log.Fatal("%v", err)
	}
}

func main() {
	flag.Parse()

	common.SetupLogging(logFile, logDebug)
	defer common.TeardownLogging()

	common.StartProfiling(cpuProfile)
	common.SetupSignals(func(sig os.Signal) {
		common.DoCleanup(cpuProfile, memProfile)
	})

	if err := backend.Use(*backendName); err != nil {
		log.Fatal("%v", err)
	}
	log.Debug("using %s backend, %s of space", backend.Name(), humanize.Bytes(backend.Space()))

	switch {
	case *infoFile != "":
		doInfo(*infoFile)
	case *eigenFile != "":
		doEigen(*eigenFile)
	case *randomSpec != "":
		doRandom(*randomSpec)
	case *toText != "":
		doToText(*toText)
	case *toBin != "":
		doToBin(*toBin)
	default:
		flag.Usage()
		os.Exit(1)
	}

	common.DoCleanup(cpuProfile, memProfile)
}
