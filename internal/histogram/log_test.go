package histogram_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/histogram"
)

func s(p, v float64) dynamo.Sample { return dynamo.Sample{Position: p, Value: v} }

var _ = Describe("Log", func() {
	var log *histogram.Log

	BeforeEach(func() {
		log = histogram.New(50, 100)
	})

	It("starts with the seed sample", func() {
		Expect(log.Samples()).To(Equal([]dynamo.Sample{s(50, 0)}))
		Expect(log.First()).To(Equal(s(50, 0)))
		Expect(log.Last()).To(Equal(s(50, 0)))
	})

	It("suppresses an immediately repeated position", func() {
		log.Append(55, 3)
		log.Append(55, 3)
		Expect(log.Samples()).To(Equal([]dynamo.Sample{s(50, 0), s(55, 3)}))
	})

	It("suppresses a repeated position even when the value differs", func() {
		log.Append(55, 3)
		log.Append(55, -7)
		Expect(log.Last()).To(Equal(s(55, 3)))
		Expect(log.Len()).To(Equal(2))
	})

	It("suppresses a position equal to the seed", func() {
		log.Append(50, 9)
		Expect(log.Len()).To(Equal(1))
	})

	DescribeTable("drops samples outside the track",
		func(position float64, grows bool) {
			before := log.Len()
			log.Append(position, 1)
			if grows {
				Expect(log.Len()).To(Equal(before + 1))
			} else {
				Expect(log.Len()).To(Equal(before))
			}
		},
		Entry("negative", -0.001, false),
		Entry("past the end", 100.001, false),
		Entry("NaN", math.NaN(), false),
		Entry("lower bound", 0.0, true),
		Entry("upper bound", 100.0, true),
	)

	It("collapses a run of three equal values into two", func() {
		log = histogram.New(0, 10)
		log.Append(1, 5)
		log.Append(2, 5)
		log.Append(3, 5)
		Expect(log.Samples()).To(Equal([]dynamo.Sample{s(0, 0), s(1, 5), s(3, 5)}))
	})

	It("keeps sliding the run end for longer runs", func() {
		log = histogram.New(0, 100)
		for p := 1.0; p <= 20; p++ {
			log.Append(p, 5)
		}
		Expect(log.Samples()).To(Equal([]dynamo.Sample{s(0, 0), s(1, 5), s(20, 5)}))
	})

	It("compresses the idle run that begins with the seed", func() {
		log.Append(51, 0)
		log.Append(52, 0)
		log.Append(53, 0)
		Expect(log.Samples()).To(Equal([]dynamo.Sample{s(50, 0), s(53, 0)}))
	})

	It("starts a new run when the value changes", func() {
		log = histogram.New(0, 100)
		log.Append(1, 5)
		log.Append(2, 5)
		log.Append(3, 5)
		log.Append(4, 6)
		log.Append(5, 6)
		log.Append(6, 6)
		Expect(log.Samples()).To(Equal([]dynamo.Sample{
			s(0, 0), s(1, 5), s(3, 5), s(4, 6), s(6, 6),
		}))
	})

	It("records a reversal as a fold in position", func() {
		log.Append(60, 10)
		log.Append(70, 10)
		log.Append(65, -10)
		log.Append(55, -10)
		positions := make([]float64, 0, log.Len())
		for _, smp := range log.Samples() {
			positions = append(positions, smp.Position)
		}
		Expect(positions).To(Equal([]float64{50, 60, 70, 65, 55}))
	})

	It("never stores consecutive equal positions", func() {
		inputs := []dynamo.Sample{s(51, 1), s(51, 1), s(52, 1), s(52, 2), s(53, 1), s(53, 1), s(54, 1), s(55, 1)}
		for _, in := range inputs {
			log.Append(in.Position, in.Value)
		}
		got := log.Samples()
		for i := 1; i < len(got); i++ {
			Expect(got[i].Position).NotTo(Equal(got[i-1].Position))
		}
	})

	It("returns a copy from Samples", func() {
		out := log.Samples()
		out[0].Value = 99
		Expect(log.First().Value).To(Equal(0.0))
	})

	Describe("Segments", func() {
		It("returns one positive segment for a non-negative trace", func() {
			log.Append(60, 4)
			segs := log.Segments()
			Expect(segs).To(HaveLen(1))
			Expect(segs[0].Positive).To(BeTrue())
			Expect(segs[0].Samples).To(Equal([]dynamo.Sample{s(50, 0), s(60, 4)}))
		})

		It("splits at sign changes and closes each segment on the axis", func() {
			log.Append(60, 4)
			log.Append(70, -4)
			log.Append(80, 2)
			segs := log.Segments()
			Expect(segs).To(HaveLen(3))
			Expect(segs[0].Positive).To(BeTrue())
			Expect(segs[0].Samples).To(Equal([]dynamo.Sample{s(50, 0), s(60, 4), s(70, 0)}))
			Expect(segs[1].Positive).To(BeFalse())
			Expect(segs[1].Samples).To(Equal([]dynamo.Sample{s(70, 0), s(70, -4), s(80, 0)}))
			Expect(segs[2].Positive).To(BeTrue())
			Expect(segs[2].Samples).To(Equal([]dynamo.Sample{s(80, 0), s(80, 2)}))
		})
	})
})
