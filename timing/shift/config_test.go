package shift_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/flashfix/rng"
	"github.com/sarchlab/flashfix/timing/flashcache"
	"github.com/sarchlab/flashfix/timing/shift"
)

var _ = Describe("Config", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "shift-config-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("should default to the VIMS setup", func() {
		cfg := shift.DefaultConfig()
		Expect(cfg.WindowSize).To(Equal(7))
		Expect(cfg.Sequence).To(Equal(shift.Samples(rng.DefaultSequence())))
		Expect(cfg.Cache).To(Equal(flashcache.DefaultConfig()))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should round trip through a file", func() {
		cfg := shift.DefaultConfig()
		cfg.WindowSize = 9
		cfg.BaseAddress = 0x1230
		path := filepath.Join(tmpDir, "shift.json")
		Expect(cfg.SaveConfig(path)).To(Succeed())

		loaded, err := shift.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(cfg))
	})

	It("should store the sequence as a number array", func() {
		path := filepath.Join(tmpDir, "shift.json")
		Expect(shift.DefaultConfig().SaveConfig(path)).To(Succeed())
		raw, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring(`"sequence": [`))
	})

	It("should keep defaults for missing keys", func() {
		path := filepath.Join(tmpDir, "partial.json")
		Expect(os.WriteFile(path, []byte(`{"window_size": 8}`), 0644)).To(Succeed())

		loaded, err := shift.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.WindowSize).To(Equal(8))
		Expect(loaded.Sequence).To(HaveLen(255))
		Expect(loaded.Cache.Ways).To(Equal(4))
	})

	It("should fail on a missing or malformed file", func() {
		_, err := shift.LoadConfig(filepath.Join(tmpDir, "nope.json"))
		Expect(err).To(HaveOccurred())

		path := filepath.Join(tmpDir, "bad.json")
		Expect(os.WriteFile(path, []byte(`{`), 0644)).To(Succeed())
		_, err = shift.LoadConfig(path)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("validation failures",
		func(mutate func(*shift.Config)) {
			cfg := shift.DefaultConfig()
			mutate(cfg)
			Expect(cfg.Validate()).NotTo(Succeed())
		},
		Entry("zero window", func(c *shift.Config) { c.WindowSize = 0 }),
		Entry("empty sequence", func(c *shift.Config) { c.Sequence = nil }),
		Entry("window longer than sequence", func(c *shift.Config) { c.Sequence = []uint8{1, 2} }),
		Entry("odd line size", func(c *shift.Config) { c.Cache.LineSize = 6 }),
		Entry("direct mapped cache cannot keep both lines", func(c *shift.Config) { c.Cache.Ways = 1 }),
	)

	It("should clone deeply", func() {
		cfg := shift.DefaultConfig()
		clone := cfg.Clone()
		clone.Sequence[0] = 3
		Expect(cfg.Sequence[0]).To(Equal(uint8(0)))
	})

	It("should load recorded data", func() {
		path := filepath.Join(tmpDir, "results.json")
		Expect(os.WriteFile(path, []byte(`{"results": [0, 1, 3], "cycles": [12, 13]}`), 0644)).To(Succeed())

		data, err := shift.LoadData(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data.Results).To(Equal(shift.Samples{0, 1, 3}))
		Expect(data.Cycles).To(Equal([]int64{12, 13}))
	})
})

var _ = Describe("Plan", func() {
	It("should place each second load where its variant says", func() {
		plan := shift.NewPlan(flashcache.DefaultConfig(), 0x4000)
		Expect(plan).To(HaveLen(len(shift.Variants)))
		Expect(shift.CheckPlan(plan)).To(Succeed())

		byVariant := map[shift.Variant]shift.PlanEntry{}
		for _, p := range plan {
			byVariant[p.Variant] = p
		}

		Expect(byVariant[shift.NextLine].SecondAddr).To(Equal(uint64(0x4008)))
		Expect(byVariant[shift.NextLine].SecondSet).To(Equal(1))
		Expect(byVariant[shift.NextNextLine].SecondSet).To(Equal(2))
		Expect(byVariant[shift.SameSetNotEvicted].SameSet()).To(BeTrue())
		Expect(byVariant[shift.SameSetNotEvicted].FirstEvicts).To(BeFalse())
		Expect(byVariant[shift.SameSetNotEvicted].FirstResident).To(BeTrue())
		Expect(byVariant[shift.SameSetEvicted].FirstResident).To(BeFalse())
		Expect(byVariant[shift.SameSetEvicted].SameSet()).To(BeTrue())
		Expect(byVariant[shift.SameSetEvicted].FirstEvicts).To(BeTrue())
		Expect(byVariant[shift.NextSet].SecondSet).To(Equal(1))
		Expect(byVariant[shift.NextSet].SecondTag).NotTo(Equal(byVariant[shift.NextLine].SecondTag))
		Expect(byVariant[shift.Unrelated].SecondSet).To(Equal(128))
	})

	It("should align an unaligned base address", func() {
		plan := shift.NewPlan(flashcache.DefaultConfig(), 0x4003)
		Expect(plan[0].FirstAddr).To(Equal(uint64(0x4000)))
	})

	It("should flag a first line that vanished without eviction", func() {
		plan := shift.NewPlan(flashcache.DefaultConfig(), 0)
		plan[2].FirstResident = false
		Expect(plan[2].Variant).To(Equal(shift.SameSetNotEvicted))
		Expect(shift.CheckPlan(plan)).NotTo(Succeed())
	})

	It("should flag a plan that contradicts a variant", func() {
		plan := shift.NewPlan(flashcache.DefaultConfig(), 0)
		plan[0].SecondSet = plan[0].FirstSet
		Expect(shift.CheckPlan(plan)).NotTo(Succeed())
	})
})
