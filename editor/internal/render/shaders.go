package render

const solidTriVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matModel;

out vec4 fragColor;
out vec3 fragNormal;
out vec3 fragWorldPos;

void main()
{
    fragColor = vertexColor;
    fragNormal = normalize(mat3(matModel) * vertexNormal);
    fragWorldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const solidTriFragmentShader = `
#version 330

in vec4 fragColor;
in vec3 fragNormal;
in vec3 fragWorldPos;

uniform vec4 colDiffuse;
uniform vec3 camPos;
uniform float fresnelExponent;
uniform float fresnelMix;

out vec4 finalColor;

void main()
{
    vec3 n = normalize(fragNormal);
    vec3 viewDir = normalize(camPos - fragWorldPos);

    // Iluminação difusa fixa, o suficiente para dar volume ao modelo.
    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
    float diffuse = 0.6 + 0.4 * max(dot(n, lightDir), 0.0);

    // Fresnel clareia as bordas viradas para longe da câmera.
    float fresnel = pow(1.0 - abs(dot(n, viewDir)), fresnelExponent);

    vec3 base = fragColor.rgb * colDiffuse.rgb * diffuse;
    vec3 rim = vec3(1.0);
    finalColor = vec4(mix(base, rim, fresnel * fresnelMix), fragColor.a * colDiffuse.a);
}
`

const texturedTriVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matModel;

out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragNormal;
out vec3 fragWorldPos;

void main()
{
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    fragNormal = normalize(mat3(matModel) * vertexNormal);
    fragWorldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const texturedTriFragmentShader = `
#version 330

in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragNormal;
in vec3 fragWorldPos;

uniform sampler2D texture0;
uniform sampler2D alphaMap;
uniform vec4 colDiffuse;
uniform vec3 camPos;
uniform float alphaFactor;
uniform float useAlphaMap;
uniform float fresnelExponent;
uniform float fresnelMix;

out vec4 finalColor;

void main()
{
    vec4 texel = texture(texture0, fragTexCoord);

    float alpha = texel.a * alphaFactor;
    if (useAlphaMap > 0.5) {
        alpha *= texture(alphaMap, fragTexCoord).r;
    }
    if (alpha < 0.01) discard;

    vec3 n = normalize(fragNormal);
    vec3 viewDir = normalize(camPos - fragWorldPos);

    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
    float diffuse = 0.6 + 0.4 * max(dot(n, lightDir), 0.0);

    float fresnel = pow(1.0 - abs(dot(n, viewDir)), fresnelExponent);

    vec3 base = texel.rgb * fragColor.rgb * colDiffuse.rgb * diffuse;
    finalColor = vec4(mix(base, vec3(1.0), fresnel * fresnelMix), alpha * colDiffuse.a);
}
`

const voxelVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;

out vec4 fragColor;
out vec3 fragNormal;
out float fragAO;

void main()
{
    fragColor = vertexColor;
    fragNormal = vertexNormal;
    // O fator de oclusão por canto vem no eixo U da coordenada de textura.
    fragAO = vertexTexCoord.x;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const voxelFragmentShader = `
#version 330

in vec4 fragColor;
in vec3 fragNormal;
in float fragAO;

uniform vec4 colDiffuse;
uniform float ambientOcclusion;

out vec4 finalColor;

void main()
{
    vec3 n = normalize(fragNormal);
    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
    float diffuse = 0.7 + 0.3 * max(dot(n, lightDir), 0.0);

    float ao = mix(1.0, fragAO, ambientOcclusion);
    finalColor = vec4(fragColor.rgb * colDiffuse.rgb * diffuse * ao, fragColor.a);
}
`

const blockVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;

out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragNormal;

void main()
{
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    fragNormal = vertexNormal;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const blockFragmentShader = `
#version 330

in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragNormal;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform float nightVision;

out vec4 finalColor;

void main()
{
    vec4 texel = texture(texture0, fragTexCoord);

    vec3 n = normalize(fragNormal);
    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
    float diffuse = 0.7 + 0.3 * max(dot(n, lightDir), 0.0);

    // A cor do vértice carrega o sombreamento de AO pré-calculado.
    vec3 colour = texel.rgb * fragColor.rgb * colDiffuse.rgb * diffuse;

    // Visão noturna: achata a iluminação e puxa tudo para o verde.
    if (nightVision > 0.5) {
        float lum = dot(colour, vec3(0.299, 0.587, 0.114));
        colour = vec3(lum * 0.3, lum * 1.1, lum * 0.3);
    }

    finalColor = vec4(colour, texel.a * fragColor.a);
}
`

const debugLineVertexShader = `
#version 330

in vec3 vertexPosition;
in vec4 vertexColor;

uniform mat4 mvp;

out vec4 fragColor;

void main()
{
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const debugLineFragmentShader = `
#version 330

in vec4 fragColor;

out vec4 finalColor;

void main()
{
    finalColor = fragColor;
}
`
