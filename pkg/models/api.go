package models

import (
	"time"
)

// Measurement is a catalogued BLS acquisition file
type Measurement struct {
	ID        string    `json:"id" doc:"Measurement unique identifier"`
	Name      string    `json:"name" doc:"Human-readable measurement name"`
	Geometry  Geometry  `json:"geometry" enum:"rf-sweep,field-sweep,line-scan,map-2d" doc:"Acquisition geometry"`
	FileKey   string    `json:"file_key" doc:"Storage key of the HDF5 file"`
	Length1   *float64  `json:"length_1,omitempty" doc:"Physical length of the first scan axis"`
	Length2   *float64  `json:"length_2,omitempty" doc:"Physical length of the second scan axis"`
	CreatedAt time.Time `json:"created_at" doc:"When the measurement was registered"`
}

// CreateMeasurementRequest registers a measurement and asks for an upload URL
type CreateMeasurementRequest struct {
	Body struct {
		Name        string   `json:"name" minLength:"1" maxLength:"200" required:"true" doc:"Human-readable measurement name"`
		Geometry    Geometry `json:"geometry" enum:"rf-sweep,field-sweep,line-scan,map-2d" required:"true" doc:"Acquisition geometry"`
		ContentType string   `json:"content_type,omitempty" enum:"application/x-hdf5,application/x-hdf,application/octet-stream" doc:"Upload content type"`
		Length1     *float64 `json:"length_1,omitempty" exclusiveMinimum:"0" doc:"Physical length of the first scan axis (line-scan, map-2d)"`
		Length2     *float64 `json:"length_2,omitempty" exclusiveMinimum:"0" doc:"Physical length of the second scan axis (map-2d)"`
	}
}

// CreateMeasurementResponseBody is the body of the create measurement response
type CreateMeasurementResponseBody struct {
	Measurement Measurement `json:"measurement" doc:"The registered measurement"`
	UploadURL   string      `json:"upload_url" doc:"Where to PUT the HDF5 file: a pre-signed URL, or the file route of this API"`
	ExpiresIn   int         `json:"expires_in,omitempty" doc:"URL expiration time in seconds, when the URL is pre-signed"`
}

// CreateMeasurementResponse is returned after registering a measurement
type CreateMeasurementResponse struct {
	Body CreateMeasurementResponseBody
}

// MeasurementIDRequest addresses a single measurement
type MeasurementIDRequest struct {
	ID string `path:"id" doc:"Measurement ID"`
}

// UploadMeasurementFileRequest carries the HDF5 file of a measurement
type UploadMeasurementFileRequest struct {
	ID      string `path:"id" doc:"Measurement ID"`
	RawBody []byte `contentType:"application/x-hdf5"`
}

// GetMeasurementResponse wraps a single measurement
type GetMeasurementResponse struct {
	Body Measurement
}

// ListMeasurementsRequest pages through the catalog
type ListMeasurementsRequest struct {
	Limit  int `query:"limit" minimum:"1" maximum:"500" default:"50" doc:"Maximum number of entries"`
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Number of entries to skip"`
}

// ListMeasurementsResponse wraps a page of the catalog
type ListMeasurementsResponse struct {
	Body struct {
		Measurements []Measurement `json:"measurements" doc:"Catalog entries, newest first"`
	}
}

// ProcessMeasurementRequest runs extraction on a stored measurement
type ProcessMeasurementRequest struct {
	ID   string `path:"id" doc:"Measurement ID"`
	Body struct {
		Policy string   `json:"policy" enum:"full,range" required:"true" doc:"Frequency policy"`
		Low    *float64 `json:"low,omitempty" doc:"Lower band frequency in GHz (range policy)"`
		High   *float64 `json:"high,omitempty" doc:"Upper band frequency in GHz (range policy)"`
	}
}

// ProcessMeasurementResponse carries the processed arrays
type ProcessMeasurementResponse struct {
	Body ProcessResult
}

// Axis is a labelled coordinate vector of a result
type Axis struct {
	Name   string    `json:"name" doc:"Axis name"`
	Unit   string    `json:"unit,omitempty" doc:"Axis unit"`
	Values []float64 `json:"values" doc:"Coordinate values"`
}

// ProcessResult is the geometry-independent form of an extraction result
type ProcessResult struct {
	MeasurementID string   `json:"measurement_id" doc:"Measurement ID"`
	Geometry      Geometry `json:"geometry" doc:"Acquisition geometry"`
	Counts        Array    `json:"counts" doc:"Photon counts"`
	Repetitions   int      `json:"repetitions,omitempty" doc:"Number of repetitions folded into the leading axis"`
	Axes          []Axis   `json:"axes" doc:"Coordinate axes"`
	Freq          FreqInfo `json:"freq" doc:"Bin frequency information"`
}
