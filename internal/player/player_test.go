package player_test

import (
	"errors"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/colormap"
	"github.com/san-kum/molvis/internal/dataset"
	"github.com/san-kum/molvis/internal/mapper"
	"github.com/san-kum/molvis/internal/player"
)

type pushed struct {
	points []r3.Vec
	colors []color.RGBA
	sizes  []float64
}

type recorder struct {
	calls []pushed
	fail  error
}

func (r *recorder) SetData(points []r3.Vec, colors []color.RGBA, sizes []float64) error {
	if r.fail != nil {
		return r.fail
	}
	r.calls = append(r.calls, pushed{points, colors, sizes})
	return nil
}

// sequence builds n frames of three points whose X coordinate encodes the frame index.
func sequence(n int) *dataset.Sequence {
	frames := make([]dataset.Frame, n)
	for i := range frames {
		frames[i] = dataset.Frame{{X: float64(i)}, {X: float64(i), Y: 1}, {X: float64(i), Z: 1}}
	}
	seq, err := dataset.NewSequence(frames)
	Expect(err).NotTo(HaveOccurred())
	return seq
}

var _ = Describe("Advancer", func() {
	var (
		seq *dataset.Sequence
		m   *mapper.Mapper
		rec *recorder
		adv *player.Advancer
	)

	BeforeEach(func() {
		seq = sequence(5)

		scalars := dataset.NewConstantScalars([]float64{2, 2, 2})
		Expect(scalars.Normalize()).To(Succeed())

		cm, err := colormap.Named("heat")
		Expect(err).NotTo(HaveOccurred())

		m, err = mapper.New(mapper.Options{
			Mode:        mapper.ModeTemperature,
			Colormap:    cm,
			Frames:      seq.Len(),
			Scalars:     scalars,
			DefaultSize: 1.28,
		})
		Expect(err).NotTo(HaveOccurred())

		rec = &recorder{}
		adv = player.New(seq, m, rec)
	})

	It("starts at frame 1", func() {
		Expect(adv.Cursor()).To(Equal(1))
	})

	It("visits frames 1,2,3,4,0,1 over six ticks with identical colors", func() {
		var visited []int
		var wrapped []bool
		for i := 0; i < 6; i++ {
			step, err := adv.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			visited = append(visited, step.Index)
			wrapped = append(wrapped, step.Wrapped)
		}

		Expect(visited).To(Equal([]int{1, 2, 3, 4, 0, 1}))
		Expect(wrapped).To(Equal([]bool{false, false, false, false, true, false}))
		Expect(rec.calls).To(HaveLen(6))

		top, err := colormap.Named("heat")
		Expect(err).NotTo(HaveOccurred())
		for i, call := range rec.calls {
			Expect(call.points[0].X).To(Equal(float64(visited[i])))
			for _, c := range call.colors {
				Expect(c).To(Equal(top.Map(1.0)))
			}
		}
	})

	It("pushes the stored positions unmodified", func() {
		_, err := adv.Advance(1)
		Expect(err).NotTo(HaveOccurred())

		want, err := seq.At(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.calls[0].points).To(Equal([]r3.Vec(want)))
	})

	It("scales sizes by the given factor", func() {
		_, err := adv.Advance(0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.calls[0].sizes).To(ConsistOf(0.64, 0.64, 0.64))
		Expect(m.Sizes()).To(ConsistOf(1.28, 1.28, 1.28))
	})

	It("shows frame 0 after Reset", func() {
		adv.Reset()
		step, err := adv.Advance(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(step).To(Equal(player.Step{Index: 0}))
		Expect(adv.Cursor()).To(Equal(1))
	})

	It("returns renderer errors without moving the cursor", func() {
		boom := errors.New("boom")
		rec.fail = boom

		_, err := adv.Advance(1)
		Expect(err).To(MatchError(boom))
		Expect(adv.Cursor()).To(Equal(1))
	})

	It("returns color errors instead of looping", func() {
		short, err := mapper.New(mapper.Options{Mode: mapper.ModeType, Frames: 2, Types: dataset.Types{0, 1, 0}})
		Expect(err).NotTo(HaveOccurred())

		adv = player.New(seq, short, rec)
		_, err = adv.Advance(1)
		Expect(err).NotTo(HaveOccurred())
		_, err = adv.Advance(1)
		Expect(err).To(MatchError(mapper.ErrFrameIndex))
		Expect(adv.Cursor()).To(Equal(2))
	})

	It("loops a single-frame sequence on every tick", func() {
		one := sequence(1)
		single, err := mapper.New(mapper.Options{Mode: mapper.ModeType, Frames: 1, Types: dataset.Types{0, 0, 1}})
		Expect(err).NotTo(HaveOccurred())

		adv = player.New(one, single, rec)
		for i := 0; i < 3; i++ {
			step, err := adv.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Index).To(Equal(0))
		}
	})
})
