package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"skelreview/internal/dataset"
	"skelreview/internal/media/ffprobe"
	"skelreview/internal/skeleton"
)

type inspectReport struct {
	Path   string          `json:"path" yaml:"path"`
	Clip   *dataset.ClipID `json:"clip,omitempty" yaml:"clip,omitempty"`
	Stats  skeleton.Stats  `json:"stats" yaml:"stats"`
	Video  *videoView      `json:"video,omitempty" yaml:"video,omitempty"`
	Frames []frameView     `json:"frames,omitempty" yaml:"frames,omitempty"`
}

type videoView struct {
	Path      string  `json:"path" yaml:"path"`
	Width     int     `json:"width" yaml:"width"`
	Height    int     `json:"height" yaml:"height"`
	FrameRate float64 `json:"frame_rate" yaml:"frame_rate"`
	Frames    int     `json:"frames" yaml:"frames"`
	Duration  float64 `json:"duration_seconds" yaml:"duration_seconds"`
}

type frameView struct {
	Frame  int        `json:"frame" yaml:"frame"`
	Bodies []bodyView `json:"bodies" yaml:"bodies"`
}

type bodyView struct {
	BodyID        uint64  `json:"body_id" yaml:"body_id"`
	TrackingState string  `json:"tracking_state" yaml:"tracking_state"`
	Joints        int     `json:"joints" yaml:"joints"`
	Tracked       int     `json:"tracked_joints" yaml:"tracked_joints"`
	LeanX         float64 `json:"lean_x" yaml:"lean_x"`
	LeanY         float64 `json:"lean_y" yaml:"lean_y"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag string
		videoFlag  string
		frames     bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <skeleton-file>",
		Short: "Summarize a skeleton file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatFlag)
			if err != nil {
				return err
			}
			doc, err := skeleton.ParseFile(args[0])
			if err != nil {
				return err
			}
			report := inspectReport{Path: args[0], Stats: doc.Stats()}
			if id, err := dataset.ParseClipID(dataset.Stem(args[0])); err == nil {
				report.Clip = &id
			}
			if frames {
				report.Frames = frameViews(doc)
			}
			if strings.TrimSpace(videoFlag) != "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				probe, err := ffprobe.Inspect(cmd.Context(), cfg.Media.FFprobeBinary, videoFlag)
				if err != nil {
					return err
				}
				stream, err := probe.VideoStream()
				if err != nil {
					return fmt.Errorf("%s: %w", videoFlag, err)
				}
				report.Video = &videoView{
					Path:      videoFlag,
					Width:     stream.Width,
					Height:    stream.Height,
					FrameRate: stream.FrameRate(),
					Frames:    stream.FrameCount(),
					Duration:  probe.DurationSeconds(),
				}
			}

			if handled, err := writeStructured(cmd, format, report); handled {
				return err
			}
			renderInspectReport(cmd, report)
			return nil
		},
	}
	addFormatFlag(cmd, &formatFlag)
	cmd.Flags().StringVar(&videoFlag, "video", "", "Compare against this video's frame count")
	cmd.Flags().BoolVar(&frames, "frames", false, "Include a per-frame body listing")
	return cmd
}

func frameViews(doc *skeleton.Document) []frameView {
	views := make([]frameView, 0, doc.FrameCount())
	for f := 0; f < doc.FrameCount(); f++ {
		bodies, err := doc.Bodies(f)
		if err != nil {
			continue
		}
		view := frameView{Frame: f, Bodies: make([]bodyView, 0, len(bodies))}
		for _, body := range bodies {
			tracked := 0
			for _, joint := range body.Joints {
				if joint.TrackingState == skeleton.Tracked {
					tracked++
				}
			}
			view.Bodies = append(view.Bodies, bodyView{
				BodyID:        body.BodyID,
				TrackingState: body.TrackingState.String(),
				Joints:        len(body.Joints),
				Tracked:       tracked,
				LeanX:         body.LeanX,
				LeanY:         body.LeanY,
			})
		}
		views = append(views, view)
	}
	return views
}

func renderInspectReport(cmd *cobra.Command, report inspectReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Skeleton: %s\n", report.Path)
	if report.Clip != nil {
		fmt.Fprintf(out, "Clip: setup %d, camera %d, performer %d, replication %d, action %s\n",
			report.Clip.Setup, report.Clip.Camera, report.Clip.Performer, report.Clip.Replication,
			dataset.ActionLabel(report.Clip.Action))
	}
	s := report.Stats
	rows := [][]string{
		{"Frames", strconv.Itoa(s.Frames)},
		{"Empty frames", strconv.Itoa(s.EmptyFrames)},
		{"Max bodies per frame", strconv.Itoa(s.MaxBodies)},
		{"Distinct body IDs", strconv.Itoa(s.DistinctIDs)},
		{"Bodies", strconv.Itoa(s.TotalBodies)},
		{"Joints", strconv.Itoa(s.TotalJoints)},
		{"Tracked joints", strconv.Itoa(s.TrackedJoints)},
	}
	fmt.Fprintln(out, renderMetricTable("Value", rows))

	if v := report.Video; v != nil {
		fmt.Fprintf(out, "Video: %s (%dx%d, %.2f fps, %d frames)\n", v.Path, v.Width, v.Height, v.FrameRate, v.Frames)
		if v.Frames > 0 && v.Frames != s.Frames {
			fmt.Fprintf(out, "Frame count differs: video %d, skeleton %d; playback stops at %d\n", v.Frames, s.Frames, min(v.Frames, s.Frames))
		}
	}

	if len(report.Frames) > 0 {
		rows = rows[:0]
		for _, f := range report.Frames {
			if len(f.Bodies) == 0 {
				rows = append(rows, []string{strconv.Itoa(f.Frame), "-", "", "", ""})
				continue
			}
			for _, b := range f.Bodies {
				rows = append(rows, []string{
					strconv.Itoa(f.Frame),
					strconv.FormatUint(b.BodyID, 10),
					b.TrackingState,
					fmt.Sprintf("%d/%d", b.Tracked, b.Joints),
					fmt.Sprintf("%.3f, %.3f", b.LeanX, b.LeanY),
				})
			}
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Frame", "Body", "State", "Tracked", "Lean"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignLeft},
		))
	}
}
