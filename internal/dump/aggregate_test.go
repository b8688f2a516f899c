package dump

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Load", func() {
	var dir string

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "lmpdump-aggregate")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	It("skips files whose total energy sums to zero", func() {
		p100 := write("argon.lj.100", dumpText(step(100), [][]float64{atomRow(0.1, 1), atomRow(0.2, 2), atomRow(0.3, 3)}))
		p200 := write("argon.lj.200", dumpText(step(200), [][]float64{atomRow(9, 0), atomRow(8, 0)}))

		agg, err := Load([]string{p100, p200})
		Expect(err).NotTo(HaveOccurred())

		Expect(agg.Len()).To(Equal(1))
		Expect(agg.Energies[0].Timestep).To(Equal(step(100)))
		Expect(agg.Energies[0].Total).To(Equal(6.0))
		Expect(agg.Energies[0].Path).To(Equal(p100))
		Expect(agg.Velocities).To(Equal([][]float64{{0.1, 0.2, 0.3}}))
	})

	It("keeps files whose energies cancel only approximately", func() {
		p := write("argon.lj.1", dumpText(step(1), [][]float64{atomRow(1, 1.5), atomRow(2, -1.25)}))

		agg, err := Load([]string{p})
		Expect(err).NotTo(HaveOccurred())
		Expect(agg.Totals()).To(Equal([]float64{0.25}))
	})

	It("treats a dump without atoms as zero energy", func() {
		p := write("argon.lj.0", "ITEM: TIMESTEP\n0\nITEM: NUMBER OF ATOMS\n0\n")

		agg, err := Load([]string{p})
		Expect(err).NotTo(HaveOccurred())
		Expect(agg.Len()).To(BeZero())
		Expect(agg.Velocities).To(BeEmpty())
	})

	It("keeps the order of the given paths", func() {
		p3 := write("argon.lj.300", dumpText(step(300), [][]float64{atomRow(3, 3)}))
		p1 := write("argon.lj.100", dumpText(step(100), [][]float64{atomRow(1, 1)}))
		p2 := write("argon.lj.200", dumpText(step(200), [][]float64{atomRow(2, 2)}))

		agg, err := Load([]string{p3, p1, p2})
		Expect(err).NotTo(HaveOccurred())
		Expect(agg.Totals()).To(Equal([]float64{3, 1, 2}))
		Expect(agg.Velocities).To(Equal([][]float64{{3}, {1}, {2}}))
	})

	It("passes a missing timestep through", func() {
		p := write("argon.lj.x", dumpText(nil, [][]float64{atomRow(1, 4)}))

		agg, err := Load([]string{p})
		Expect(err).NotTo(HaveOccurred())
		Expect(agg.Timesteps()).To(HaveLen(1))
		Expect(agg.Timesteps()[0]).To(BeNil())
	})

	It("aborts on a malformed file without returning partial results", func() {
		good := write("argon.lj.100", dumpText(step(100), [][]float64{atomRow(1, 1)}))
		bad := write("argon.lj.200", "ITEM: TIMESTEP\n200\nITEM: ATOMS\n1 1 0.5 0.5\n")

		agg, err := Load([]string{good, bad})
		Expect(err).To(MatchError(ErrFormat))
		Expect(err.Error()).To(ContainSubstring(bad))
		Expect(agg).To(BeNil())
	})

	It("propagates read errors", func() {
		_, err := Load([]string{filepath.Join(dir, "argon.lj.missing")})
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("collects the requested component", func() {
		p := write("argon.lj.1", dumpText(step(1), [][]float64{atomRow(1, 5)}))

		agg, err := Load([]string{p}, WithComponent(CompEtot))
		Expect(err).NotTo(HaveOccurred())
		Expect(agg.Component).To(Equal(CompEtot))
		Expect(agg.Velocities).To(Equal([][]float64{{5}}))

		_, err = Load([]string{p}, WithComponent("speed"))
		Expect(err).To(MatchError(ErrUnknownComponent))
	})

	It("logs skipped files when given a logger", func() {
		p := write("argon.lj.5", dumpText(step(5), [][]float64{atomRow(1, 0)}))
		var buf bytes.Buffer

		_, err := Load([]string{p}, WithLogger(log.New(&buf, "", 0)))
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("skipping " + p))
	})

	It("loads a whole directory", func() {
		write("argon.lj.100", dumpText(step(100), [][]float64{atomRow(1, 1)}))
		write("argon.lj.200", dumpText(step(200), [][]float64{atomRow(2, 2)}))
		write("log.lammps", "not a dump")

		agg, err := LoadDir(dir, DefaultPrefix)
		Expect(err).NotTo(HaveOccurred())
		agg.SortByTimestep()
		Expect(agg.Totals()).To(Equal([]float64{1, 2}))
	})
})

var _ = Describe("Aggregate.SortByTimestep", func() {
	It("orders by timestep with missing timesteps last", func() {
		agg := &Aggregate{
			Energies: []EnergyPoint{
				{Timestep: nil, Total: 9},
				{Timestep: step(300), Total: 3},
				{Timestep: step(100), Total: 1},
				{Timestep: nil, Total: 8},
				{Timestep: step(200), Total: 2},
			},
			Velocities: [][]float64{{9}, {3}, {1}, {8}, {2}},
		}

		agg.SortByTimestep()

		Expect(agg.Totals()).To(Equal([]float64{1, 2, 3, 9, 8}))
		Expect(agg.Velocities).To(Equal([][]float64{{1}, {2}, {3}, {9}, {8}}))
	})
})
