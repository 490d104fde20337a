package configurator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"custom-case-backend/internal/catalog"
)

// OptionField names a selectable option slot on the configurator.
type OptionField string

const (
	FieldColor    OptionField = "color"
	FieldModel    OptionField = "model"
	FieldMaterial OptionField = "material"
	FieldFinish   OptionField = "finish"
)

// SelectedOptions is the full set of chosen case options.
type SelectedOptions struct {
	Color    catalog.Color
	Model    catalog.PhoneModel
	Material catalog.Material
	Finish   catalog.Finish
}

func DefaultOptions() SelectedOptions {
	return SelectedOptions{
		Color:    catalog.DefaultColor(),
		Model:    catalog.DefaultPhoneModel(),
		Material: catalog.DefaultMaterial(),
		Finish:   catalog.DefaultFinish(),
	}
}

// CroppedUploader persists the composited PNG as the configuration's cropped
// image.
type CroppedUploader interface {
	UploadCropped(ctx context.Context, data []byte) error
}

// OptionSaver persists the selected options against the configuration.
type OptionSaver interface {
	SaveOptions(ctx context.Context, opts SelectedOptions) error
}

// CroppedUploaderFunc adapts a function to the CroppedUploader interface.
type CroppedUploaderFunc func(ctx context.Context, data []byte) error

func (f CroppedUploaderFunc) UploadCropped(ctx context.Context, data []byte) error {
	return f(ctx, data)
}

// OptionSaverFunc adapts a function to the OptionSaver interface.
type OptionSaverFunc func(ctx context.Context, opts SelectedOptions) error

func (f OptionSaverFunc) SaveOptions(ctx context.Context, opts SelectedOptions) error {
	return f(ctx, opts)
}

// Configurator holds the transient design state for one configuration: the
// selected options and the overlay placement. All state is owned by a single
// request; nothing here is shared.
type Configurator struct {
	imageURL    string
	imageWidth  int
	imageHeight int

	options   SelectedOptions
	placement Placement
}

// New creates a configurator for an uploaded image. The overlay starts at the
// default drop position, scaled to a quarter of the image's native size.
func New(imageURL string, imageWidth, imageHeight int) *Configurator {
	return &Configurator{
		imageURL:    imageURL,
		imageWidth:  imageWidth,
		imageHeight: imageHeight,
		options:     DefaultOptions(),
		placement: Placement{
			X:      150,
			Y:      205,
			Width:  float64(imageWidth) / 4,
			Height: float64(imageHeight) / 4,
		},
	}
}

// SetOption selects an option by its value token. Unknown tokens are
// rejected; values are expected to come from the catalog tables.
func (c *Configurator) SetOption(field OptionField, value string) error {
	switch field {
	case FieldColor:
		color, ok := catalog.ColorByValue(value)
		if !ok {
			return fmt.Errorf("unknown color %q", value)
		}
		c.options.Color = color
	case FieldModel:
		model, ok := catalog.PhoneModelByValue(value)
		if !ok {
			return fmt.Errorf("unknown model %q", value)
		}
		c.options.Model = model
	case FieldMaterial:
		material, ok := catalog.MaterialByValue(value)
		if !ok {
			return fmt.Errorf("unknown material %q", value)
		}
		c.options.Material = material
	case FieldFinish:
		finish, ok := catalog.FinishByValue(value)
		if !ok {
			return fmt.Errorf("unknown finish %q", value)
		}
		c.options.Finish = finish
	default:
		return fmt.Errorf("unknown option field %q", field)
	}

	return nil
}

// SetPlacement records the overlay position and size after a drag or resize.
func (c *Configurator) SetPlacement(p Placement) {
	c.placement = p
}

func (c *Configurator) Options() SelectedOptions {
	return c.options
}

func (c *Configurator) Placement() Placement {
	return c.placement
}

// DisplayPriceCents is the running total shown next to the continue button.
func (c *Configurator) DisplayPriceCents() int64 {
	return catalog.DisplayPriceCents(c.options.Material, c.options.Finish)
}

// Finalize produces the composited design and persists it: the user image is
// fetched, drawn at its template-relative position onto a canvas sized to the
// template, exported as a PNG, and then the cropped-image upload and the
// option save run concurrently. Both must succeed; the first failure is
// returned with its branch named, and no rollback of the other branch is
// attempted.
func (c *Configurator) Finalize(ctx context.Context, template, container Rect, fetcher ImageFetcher, uploader CroppedUploader, saver OptionSaver) error {
	at := TranslateToTemplate(c.placement, template, container)

	userImage, err := fetcher.FetchImage(ctx, c.imageURL)
	if err != nil {
		return fmt.Errorf("load user image: %w", err)
	}

	canvas, err := Composite(userImage, round(template.Width), round(template.Height), at, c.placement.Width, c.placement.Height)
	if err != nil {
		return fmt.Errorf("composite design: %w", err)
	}

	dataURL, err := EncodePNGDataURL(canvas)
	if err != nil {
		return fmt.Errorf("export design: %w", err)
	}

	data, err := DecodeDataURL(dataURL)
	if err != nil {
		return fmt.Errorf("export design: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := uploader.UploadCropped(gctx, data); err != nil {
			return fmt.Errorf("upload cropped image: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := saver.SaveOptions(gctx, c.options); err != nil {
			return fmt.Errorf("save options: %w", err)
		}
		return nil
	})

	return g.Wait()
}
